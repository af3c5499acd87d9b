package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"medassist/internal/domain/validation"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	meds     []Medication
	schedule []ScheduledMedication

	failSchedule bool
	medSaves     int
	loads        int
}

func (r *testRepo) LoadMedications(ctx context.Context) []Medication {
	r.loads++
	return append([]Medication(nil), r.meds...)
}

func (r *testRepo) SaveMedications(ctx context.Context, ms []Medication) error {
	r.medSaves++
	r.meds = append([]Medication(nil), ms...)
	return nil
}

func (r *testRepo) LoadSchedule(ctx context.Context) []ScheduledMedication {
	return append([]ScheduledMedication(nil), r.schedule...)
}

func (r *testRepo) SaveSchedule(ctx context.Context, items []ScheduledMedication) error {
	if r.failSchedule {
		return errors.New("disk full")
	}
	r.schedule = append([]ScheduledMedication(nil), items...)
	return nil
}

func (r *testRepo) Reset(ctx context.Context) error {
	r.meds = nil
	r.schedule = nil
	return nil
}

type alarmCall struct {
	dueAt       time.Time
	title, body string
}

type testAlarms struct {
	calls      []alarmCall
	cancels    []alarmCall
	cancelAlls int
	err        error
}

func (a *testAlarms) ScheduleOneShot(ctx context.Context, dueAt time.Time, title, body string) error {
	a.calls = append(a.calls, alarmCall{dueAt: dueAt, title: title, body: body})
	return a.err
}

func (a *testAlarms) Cancel(ctx context.Context, dueAt time.Time, title, body string) error {
	a.cancels = append(a.cancels, alarmCall{dueAt: dueAt, title: title, body: body})
	return nil
}

func (a *testAlarms) CancelAll(ctx context.Context) error {
	a.cancelAlls++
	return nil
}

func newTestService(repo *testRepo, alarms *testAlarms, now time.Time) (*Service, *time.Time) {
	clock := now
	svc := NewService(repo, Options{Alarms: alarms})
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func amoxicilina() CreateInput {
	return CreateInput{
		Name:          "Amoxicilina",
		DosesPerDay:   3,
		TreatmentDays: 2,
		CustomTimes:   times("09:00", "16:00", "22:00"),
	}
}

func TestService_CreatePersistsAndSchedulesAlarms(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{}
	alarms := &testAlarms{}
	svc, _ := newTestService(repo, alarms, at(14, 30))

	m, doses, err := svc.Create(ctx, amoxicilina())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID == "" || m.Status != StatusActive {
		t.Fatalf("unexpected medication %#v", m)
	}
	if len(doses) != 6 || len(repo.schedule) != 6 || len(repo.meds) != 1 {
		t.Fatalf("expected 6 persisted doses and 1 medication, got %d/%d/%d", len(doses), len(repo.schedule), len(repo.meds))
	}
	if len(alarms.calls) != 6 {
		t.Fatalf("expected 6 alarms, got %d", len(alarms.calls))
	}
	if alarms.calls[0].title != "Hora de tomar Amoxicilina" || alarms.calls[0].body != "Es hora de tomar tu medicamento Amoxicilina" {
		t.Fatalf("unexpected alarm text %#v", alarms.calls[0])
	}
	if !alarms.calls[0].dueAt.Equal(at(16, 0)) {
		t.Fatalf("expected first alarm at 16:00, got %v", alarms.calls[0].dueAt)
	}
}

func TestService_CreateInvalidPersistsNothing(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{}
	alarms := &testAlarms{}
	svc, _ := newTestService(repo, alarms, at(8, 0))

	in := amoxicilina()
	in.CustomTimes = times("09:00")
	_, _, err := svc.Create(ctx, in)

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.medSaves != 0 || len(alarms.calls) != 0 {
		t.Fatalf("nothing should be persisted or scheduled")
	}
}

func TestService_CreateRollsBackWhenScheduleSaveFails(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{failSchedule: true}
	alarms := &testAlarms{}
	svc, _ := newTestService(repo, alarms, at(8, 0))

	if _, _, err := svc.Create(ctx, amoxicilina()); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.meds) != 0 {
		t.Fatalf("expected medications rolled back, got %d", len(repo.meds))
	}
	if len(svc.Medications(ctx)) != 0 {
		t.Fatalf("in-memory state must not change on failed write")
	}
	if len(alarms.calls) != 0 {
		t.Fatalf("no alarms expected")
	}
}

func TestService_AlarmFailureDoesNotFailCreate(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{}
	alarms := &testAlarms{err: errors.New("permission denied")}
	svc, _ := newTestService(repo, alarms, at(8, 0))

	_, doses, err := svc.Create(ctx, amoxicilina())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, d := range svc.Schedule(ctx, "") {
		if d.Status != DoseScheduled {
			t.Fatalf("dose should stay SCHEDULED")
		}
	}
	if len(doses) != 6 {
		t.Fatalf("expected 6 doses, got %d", len(doses))
	}
}

func TestService_RemindersMemoAndInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{}
	svc, clock := newTestService(repo, &testAlarms{}, at(8, 0))

	if got := svc.Reminders(ctx); len(got) != 0 {
		t.Fatalf("expected no reminders, got %d", len(got))
	}

	in := amoxicilina()
	in.TreatmentDays = 1
	m, _, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// La mutación invalida el memo aunque sea el mismo minuto.
	got := svc.Reminders(ctx)
	if len(got) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(got))
	}

	*clock = at(16, 30)
	got = svc.Reminders(ctx)
	if len(got) != 1 || got[0].DueAt.Hour() != 22 {
		t.Fatalf("expected only 22:00 after 16:30, got %#v", got)
	}

	if _, err := svc.UpdateStatus(ctx, m.ID, StatusCompleted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got := svc.Reminders(ctx); len(got) != 0 {
		t.Fatalf("completed medication must not produce reminders, got %d", len(got))
	}
}

func TestService_PendingMedicationGetsAlarmsOnActivation(t *testing.T) {
	ctx := context.Background()
	alarms := &testAlarms{}
	svc, clock := newTestService(&testRepo{}, alarms, at(8, 0))

	in := amoxicilina()
	in.Status = StatusPending
	m, doses, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(doses) != 6 || len(alarms.calls) != 0 {
		t.Fatalf("pending medication must not schedule alarms, got %d", len(alarms.calls))
	}
	if n := svc.RestoreAlarms(ctx); n != 0 {
		t.Fatalf("pending medication must not be restored, got %d", n)
	}

	// A las 17:00 quedan 22:00 de hoy y las tres de mañana.
	*clock = at(17, 0)
	if _, err := svc.UpdateStatus(ctx, m.ID, StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(alarms.calls) != 4 {
		t.Fatalf("expected 4 alarms after activation, got %d", len(alarms.calls))
	}
	if !alarms.calls[0].dueAt.Equal(at(22, 0)) {
		t.Fatalf("expected first alarm at 22:00, got %v", alarms.calls[0].dueAt)
	}
	if n := svc.RestoreAlarms(ctx); n != 4 {
		t.Fatalf("restore must match the activated alarms, got %d", n)
	}
}

func TestService_EndingMedicationCancelsFutureAlarms(t *testing.T) {
	ctx := context.Background()
	alarms := &testAlarms{}
	svc, clock := newTestService(&testRepo{}, alarms, at(8, 0))

	m, _, err := svc.Create(ctx, amoxicilina())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	*clock = at(12, 0)
	if _, err := svc.UpdateStatus(ctx, m.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(alarms.cancels) != 5 {
		t.Fatalf("expected 5 cancelled alarms, got %d", len(alarms.cancels))
	}
	for _, c := range alarms.cancels {
		if !c.dueAt.After(at(12, 0)) || c.title != "Hora de tomar Amoxicilina" {
			t.Fatalf("unexpected cancel %#v", c)
		}
	}
}

func TestService_UpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&testRepo{}, &testAlarms{}, at(8, 0))

	in := amoxicilina()
	in.Status = StatusPending
	m, _, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, m.ID, StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending -> completed should fail, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, m.ID, StatusActive); err != nil {
		t.Fatalf("pending -> active: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, m.ID, StatusActive); err != nil {
		t.Fatalf("same status should be a no-op, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, m.ID, StatusCancelled); err != nil {
		t.Fatalf("active -> cancelled: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, m.ID, StatusActive); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", StatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, m.ID, "paused"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestService_MarkDose(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{}
	alarms := &testAlarms{}
	svc, _ := newTestService(repo, alarms, at(8, 0))

	_, doses, err := svc.Create(ctx, amoxicilina())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	d, err := svc.MarkDose(ctx, doses[0].ID, DoseTaken)
	if err != nil {
		t.Fatalf("mark dose: %v", err)
	}
	if d.Status != DoseTaken || repo.schedule[0].Status != DoseTaken {
		t.Fatalf("dose not persisted as TAKEN")
	}
	if len(alarms.cancels) != 1 || !alarms.cancels[0].dueAt.Equal(doses[0].DueAt) {
		t.Fatalf("expected the dose alarm to be cancelled, got %#v", alarms.cancels)
	}
	if _, err := svc.MarkDose(ctx, doses[0].ID, DoseMissed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("TAKEN is terminal, got %v", err)
	}
	if _, err := svc.MarkDose(ctx, "nope", DoseMissed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_LoadsFromRepositoryOnce(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{
		meds: []Medication{{ID: "m1", Name: "x", DosesPerDay: 1, TreatmentDays: 1, CustomTimes: times("10:00"), Status: StatusActive}},
		schedule: []ScheduledMedication{
			{ID: "d1", MedicationID: "m1", Name: "x", DueAt: at(10, 0), Status: DoseScheduled},
		},
	}
	svc, _ := newTestService(repo, &testAlarms{}, at(8, 0))

	if got := svc.Reminders(ctx); len(got) != 1 {
		t.Fatalf("expected persisted dose as reminder, got %d", len(got))
	}
	_ = svc.Medications(ctx)
	_ = svc.Schedule(ctx, "m1")
	if repo.loads != 1 {
		t.Fatalf("expected a single load, got %d", repo.loads)
	}
}

func TestService_ResetAndOnChange(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{}
	alarms := &testAlarms{}
	svc, _ := newTestService(repo, alarms, at(8, 0))

	var snaps []Snapshot
	svc.OnChange(func(s Snapshot) { snaps = append(snaps, s) })

	if _, _, err := svc.Create(ctx, amoxicilina()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if len(snaps) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(snaps))
	}
	active, pending := snaps[0].Inventory()
	if active != 1 || pending != 6 {
		t.Fatalf("unexpected inventory %d/%d", active, pending)
	}
	if len(snaps[1].Medications) != 0 || len(repo.meds) != 0 || len(repo.schedule) != 0 {
		t.Fatalf("reset must clear everything")
	}
	if alarms.cancelAlls != 1 {
		t.Fatalf("reset must cancel pending alarms, got %d", alarms.cancelAlls)
	}
}

func TestService_NotifyDropsOutOfOrderSnapshots(t *testing.T) {
	svc, _ := newTestService(&testRepo{}, &testAlarms{}, at(8, 0))

	var got []uint64
	svc.OnChange(func(s Snapshot) { got = append(got, s.Version) })

	svc.notify(Snapshot{Version: 3})
	svc.notify(Snapshot{Version: 2})
	svc.notify(Snapshot{Version: 3})
	svc.notify(Snapshot{Version: 5})

	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Fatalf("expected versions [3 5], got %v", got)
	}
}

func TestService_RestoreAlarms(t *testing.T) {
	ctx := context.Background()
	repo := &testRepo{
		meds: []Medication{
			{ID: "a", Name: "A", DosesPerDay: 1, TreatmentDays: 3, CustomTimes: times("10:00"), Status: StatusActive},
			{ID: "c", Name: "C", DosesPerDay: 1, TreatmentDays: 1, CustomTimes: times("10:00"), Status: StatusCancelled},
		},
		schedule: []ScheduledMedication{
			{ID: "past", MedicationID: "a", Name: "A", DueAt: at(7, 0), Status: DoseScheduled},
			{ID: "future", MedicationID: "a", Name: "A", DueAt: at(10, 0), Status: DoseScheduled},
			{ID: "taken", MedicationID: "a", Name: "A", DueAt: at(11, 0), Status: DoseTaken},
			{ID: "cancelled", MedicationID: "c", Name: "C", DueAt: at(10, 0), Status: DoseScheduled},
		},
	}
	alarms := &testAlarms{}
	svc, _ := newTestService(repo, alarms, at(8, 0))

	if n := svc.RestoreAlarms(ctx); n != 1 {
		t.Fatalf("expected 1 restored alarm, got %d", n)
	}
	if len(alarms.calls) != 1 || alarms.calls[0].title != "Hora de tomar A" {
		t.Fatalf("unexpected calls %#v", alarms.calls)
	}
}
