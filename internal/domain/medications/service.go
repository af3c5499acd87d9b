package medications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medassist/internal/domain/timeofday"
	"medassist/internal/platform/logger"
	"medassist/internal/platform/metrics"
	"medassist/internal/ports/notifications"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service es el dueño único del estado compartido (medicaciones + tomas).
// Toda mutación pasa por el generador y el gateway de persistencia; las vistas
// leen con Snapshot/Medications/Schedule/Reminders o se suscriben con OnChange.
type Service struct {
	repo    Repository
	alarms  notifications.Scheduler
	log     logger.Logger
	metrics *metrics.Metrics
	limits  Limits
	now     func() time.Time

	mu        sync.Mutex
	loaded    bool
	meds      []Medication
	schedule  []ScheduledMedication
	version   uint64
	memo      reminderMemo
	listeners []func(Snapshot)

	// notifyMu serializa la entrega a listeners, fuera de mu.
	notifyMu     sync.Mutex
	lastNotified uint64
}

type Options struct {
	Alarms   notifications.Scheduler // puede ser nil: no se programan alertas
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Limits   Limits
	Location *time.Location
}

type reminderMemo struct {
	valid   bool
	version uint64
	minute  time.Time
	out     []Reminder
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	limits := opts.Limits
	if limits.MaxDosesPerDay <= 0 || limits.MaxTreatmentDays <= 0 {
		limits = DefaultLimits
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		repo:    repo,
		alarms:  opts.Alarms,
		log:     log.With(map[string]any{"component": "medications"}),
		metrics: opts.Metrics,
		limits:  limits,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

type CreateInput struct {
	Name          string
	DosesPerDay   int
	TreatmentDays int
	CustomTimes   []timeofday.TimeOfDay
	Status        Status     // opcional, default active
	StartDate     *time.Time // opcional, default ahora
}

// Create valida, genera el calendario completo, persiste ambas colecciones y
// entrega cada toma nueva al gateway de alertas.
func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, []ScheduledMedication, error) {
	now := s.now()

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	start := now
	if in.StartDate != nil && !in.StartDate.IsZero() {
		start = *in.StartDate
	}

	m := Medication{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		DosesPerDay:   in.DosesPerDay,
		TreatmentDays: in.TreatmentDays,
		CustomTimes:   append([]timeofday.TimeOfDay(nil), in.CustomTimes...),
		Status:        status,
		StartDate:     start,
	}

	if res := CheckNew(m, s.limits); !res.Valid() {
		return Medication{}, nil, res.Err
	}

	batch := GenerateSchedule(m, now)

	s.mu.Lock()
	s.loadLocked(ctx)

	prevMeds := s.meds
	nextMeds := append(cloneMeds(s.meds), m)
	nextSchedule := append(cloneSchedule(s.schedule), batch...)

	if err := s.repo.SaveMedications(ctx, nextMeds); err != nil {
		s.mu.Unlock()
		return Medication{}, nil, fmt.Errorf("save medications: %w", err)
	}
	if err := s.repo.SaveSchedule(ctx, nextSchedule); err != nil {
		// Deshacemos la lista de medicaciones para no dejar un tratamiento sin tomas.
		if rbErr := s.repo.SaveMedications(ctx, prevMeds); rbErr != nil {
			s.log.Error("rollback medications failed", map[string]any{"error": rbErr})
		}
		s.mu.Unlock()
		return Medication{}, nil, fmt.Errorf("save schedule: %w", err)
	}

	s.meds = nextMeds
	s.schedule = nextSchedule
	snap := s.commitLocked()
	s.mu.Unlock()

	s.metrics.DosesGenerated(len(batch))
	s.log.Info("medication created", map[string]any{
		"medication_id": m.ID,
		"doses":         len(batch),
	})
	s.notify(snap)

	// Solo un tratamiento activo dispara alertas; pending las recibe al activarse.
	if m.Status == StatusActive {
		s.scheduleAlarms(ctx, batch)
	}

	return m, cloneSchedule(batch), nil
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.snapshotLocked()
}

func (s *Service) Medications(ctx context.Context) []Medication {
	return s.Snapshot(ctx).Medications
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	for _, m := range s.Medications(ctx) {
		if m.ID == id {
			return m, nil
		}
	}
	return Medication{}, ErrNotFound
}

// Schedule lista las tomas; si medicationID no está vacío filtra por tratamiento.
func (s *Service) Schedule(ctx context.Context, medicationID string) []ScheduledMedication {
	all := s.Snapshot(ctx).Schedule
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return all
	}
	out := make([]ScheduledMedication, 0)
	for _, d := range all {
		if d.MedicationID == medicationID {
			out = append(out, d)
		}
	}
	return out
}

// Reminders calcula los recordatorios de hoy. Se memoiza por versión del estado
// y minuto actual; cualquier mutación invalida el memo.
func (s *Service) Reminders(ctx context.Context) []Reminder {
	now := s.now()
	minute := now.Truncate(time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	if s.memo.valid && s.memo.version == s.version && s.memo.minute.Equal(minute) {
		return append(make([]Reminder, 0, len(s.memo.out)), s.memo.out...)
	}

	out := SelectToday(s.meds, s.schedule, now)
	s.memo = reminderMemo{valid: true, version: s.version, minute: minute, out: out}
	s.metrics.ReminderQuery()

	return append(make([]Reminder, 0, len(out)), out...)
}

// UpdateStatus aplica una transición de estado al tratamiento.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" || !to.Valid() {
		return Medication{}, ErrInvalidInput
	}

	s.mu.Lock()
	s.loadLocked(ctx)

	idx := -1
	for i, m := range s.meds {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Medication{}, ErrNotFound
	}

	current := s.meds[idx]
	if current.Status == to {
		s.mu.Unlock()
		return current, nil
	}
	if !canTransition(current.Status, to) {
		s.mu.Unlock()
		return Medication{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	next := cloneMeds(s.meds)
	next[idx].Status = to
	if err := s.repo.SaveMedications(ctx, next); err != nil {
		s.mu.Unlock()
		return Medication{}, fmt.Errorf("save medications: %w", err)
	}

	s.meds = next
	snap := s.commitLocked()
	updated := next[idx]
	future := s.futureDosesLocked(id, s.now())
	s.mu.Unlock()

	switch to {
	case StatusActive:
		s.scheduleAlarms(ctx, future)
	case StatusCompleted, StatusCancelled:
		s.cancelAlarms(ctx, future)
	}

	s.log.Info("medication status changed", map[string]any{
		"medication_id": id,
		"from":          string(current.Status),
		"to":            string(to),
	})
	s.notify(snap)
	return updated, nil
}

// MarkDose pasa una toma de SCHEDULED a TAKEN o MISSED.
func (s *Service) MarkDose(ctx context.Context, id string, to DoseStatus) (ScheduledMedication, error) {
	id = strings.TrimSpace(id)
	if id == "" || !to.Valid() {
		return ScheduledMedication{}, ErrInvalidInput
	}

	s.mu.Lock()
	s.loadLocked(ctx)

	idx := -1
	for i, d := range s.schedule {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ScheduledMedication{}, ErrNotFound
	}

	current := s.schedule[idx]
	if !canMarkDose(current.Status, to) {
		s.mu.Unlock()
		return ScheduledMedication{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	next := cloneSchedule(s.schedule)
	next[idx].Status = to
	if err := s.repo.SaveSchedule(ctx, next); err != nil {
		s.mu.Unlock()
		return ScheduledMedication{}, fmt.Errorf("save schedule: %w", err)
	}

	s.schedule = next
	snap := s.commitLocked()
	updated := next[idx]
	s.mu.Unlock()

	s.cancelAlarms(ctx, []ScheduledMedication{current})
	s.notify(snap)
	return updated, nil
}

// Reset borra todas las medicaciones y tomas.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	if err := s.repo.Reset(ctx); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reset storage: %w", err)
	}
	s.meds = nil
	s.schedule = nil
	s.loaded = true
	snap := s.commitLocked()
	s.mu.Unlock()

	if s.alarms != nil {
		if err := s.alarms.CancelAll(ctx); err != nil {
			s.log.Warn("cancel alarms failed", map[string]any{"error": err})
		}
	}

	s.log.Warn("medications reset", nil)
	s.notify(snap)
	return nil
}

// RestoreAlarms vuelve a entregar al gateway las tomas futuras de tratamientos
// activos. Se usa al arrancar, porque el dispatcher en proceso no persiste alarmas.
func (s *Service) RestoreAlarms(ctx context.Context) int {
	now := s.now()
	snap := s.Snapshot(ctx)

	active := make(map[string]bool, len(snap.Medications))
	for _, m := range snap.Medications {
		active[m.ID] = m.Status == StatusActive
	}

	pending := make([]ScheduledMedication, 0)
	for _, d := range snap.Schedule {
		if d.Status == DoseScheduled && active[d.MedicationID] && d.DueAt.After(now) {
			pending = append(pending, d)
		}
	}

	s.scheduleAlarms(ctx, pending)
	return len(pending)
}

// OnChange registra un listener que recibe un Snapshot después de cada mutación.
// Se invoca fuera del lock del estado, en orden de versión; no debe bloquear
// ni mutar el servicio.
func (s *Service) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Service) scheduleAlarms(ctx context.Context, doses []ScheduledMedication) {
	if s.alarms == nil {
		return
	}
	for _, d := range doses {
		title, body := alarmText(d.Name)
		err := s.alarms.ScheduleOneShot(ctx, d.DueAt, title, body)
		s.metrics.AlarmScheduled(err)
		if err != nil {
			// La toma queda SCHEDULED igual: sin reintento ni rollback.
			s.log.Warn("schedule alarm failed", map[string]any{
				"dose_id": d.ID,
				"due_at":  d.DueAt.Format(time.RFC3339),
				"error":   err,
			})
		}
	}
}

func (s *Service) cancelAlarms(ctx context.Context, doses []ScheduledMedication) {
	if s.alarms == nil {
		return
	}
	for _, d := range doses {
		title, body := alarmText(d.Name)
		if err := s.alarms.Cancel(ctx, d.DueAt, title, body); err != nil {
			s.log.Warn("cancel alarm failed", map[string]any{
				"dose_id": d.ID,
				"error":   err,
			})
		}
	}
}

// futureDosesLocked devuelve las tomas SCHEDULED de un tratamiento que vencen después de now.
func (s *Service) futureDosesLocked(medicationID string, now time.Time) []ScheduledMedication {
	out := make([]ScheduledMedication, 0)
	for _, d := range s.schedule {
		if d.MedicationID == medicationID && d.Status == DoseScheduled && d.DueAt.After(now) {
			out = append(out, d)
		}
	}
	return out
}

func alarmText(name string) (title, body string) {
	return "Hora de tomar " + name, "Es hora de tomar tu medicamento " + name
}

func (s *Service) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.meds = s.repo.LoadMedications(ctx)
	s.schedule = s.repo.LoadSchedule(ctx)
	s.loaded = true
	s.version++
}

func (s *Service) commitLocked() Snapshot {
	s.version++
	s.memo = reminderMemo{}
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Version:     s.version,
		Medications: cloneMeds(s.meds),
		Schedule:    cloneSchedule(s.schedule),
	}
}

// notify entrega snap a los listeners en orden de versión. Si otra mutación ya
// entregó un estado más nuevo, snap se descarta.
func (s *Service) notify(snap Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if snap.Version <= s.lastNotified {
		return
	}
	s.lastNotified = snap.Version

	s.mu.Lock()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func cloneMeds(in []Medication) []Medication {
	out := make([]Medication, len(in))
	for i, m := range in {
		m.CustomTimes = append([]timeofday.TimeOfDay(nil), m.CustomTimes...)
		out[i] = m
	}
	return out
}

func cloneSchedule(in []ScheduledMedication) []ScheduledMedication {
	out := make([]ScheduledMedication, len(in))
	copy(out, in)
	return out
}
