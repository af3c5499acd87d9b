// Package cronalarm implementa el gateway de alertas con un dispatcher en proceso:
// cada alerta es una entrada de cron de un solo disparo.
package cronalarm

import (
	"context"
	"errors"
	"sync"
	"time"

	"medassist/internal/platform/logger"
	"medassist/internal/platform/metrics"
	"medassist/internal/ports/notifications"

	"github.com/robfig/cron/v3"
)

var ErrPastDue = errors.New("alarm due time is not in the future")

const sendTimeout = 15 * time.Second

// oneShot devuelve at una sola vez; después, tiempo cero (cron no la vuelve a correr).
type oneShot struct {
	at time.Time
}

func (s oneShot) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

type Options struct {
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Location *time.Location
}

type Dispatcher struct {
	cron    *cron.Cron
	sender  notifications.Sender
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.Mutex
	pending map[string]cron.EntryID
}

func New(sender notifications.Sender, opts Options) *Dispatcher {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Dispatcher{
		cron:    cron.New(cron.WithLocation(loc)),
		sender:  sender,
		log:     log.With(map[string]any{"component": "cronalarm", "channel": sender.Name()}),
		metrics: opts.Metrics,
		now:     time.Now,
		pending: make(map[string]cron.EntryID),
	}
}

func (d *Dispatcher) Start() { d.cron.Start() }

// Stop deja de disparar alarmas y espera a que terminen los envíos en curso.
func (d *Dispatcher) Stop(ctx context.Context) {
	done := d.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Pending cuenta las alarmas programadas que todavía no dispararon.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// ScheduleOneShot programa una alerta en dueAt. Repetir la misma alerta no la duplica.
func (d *Dispatcher) ScheduleOneShot(ctx context.Context, dueAt time.Time, title, body string) error {
	if !dueAt.After(d.now()) {
		return ErrPastDue
	}

	key := alarmKey(dueAt, title, body)
	alert := notifications.Alert{DueAt: dueAt, Title: title, Body: body}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pending[key]; ok {
		return nil
	}
	id := d.cron.Schedule(oneShot{at: dueAt}, cron.FuncJob(func() {
		d.fire(key, alert)
	}))
	d.pending[key] = id
	return nil
}

// Cancel saca la alerta del cron si todavía no disparó.
func (d *Dispatcher) Cancel(ctx context.Context, dueAt time.Time, title, body string) error {
	key := alarmKey(dueAt, title, body)

	d.mu.Lock()
	id, ok := d.pending[key]
	delete(d.pending, key)
	d.mu.Unlock()

	if ok {
		d.cron.Remove(id)
	}
	return nil
}

// CancelAll descarta todas las alertas pendientes.
func (d *Dispatcher) CancelAll(ctx context.Context) error {
	d.mu.Lock()
	ids := make([]cron.EntryID, 0, len(d.pending))
	for key, id := range d.pending {
		ids = append(ids, id)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, id := range ids {
		d.cron.Remove(id)
	}
	if len(ids) > 0 {
		d.log.Info("alarms cancelled", map[string]any{"count": len(ids)})
	}
	return nil
}

func alarmKey(dueAt time.Time, title, body string) string {
	return dueAt.UTC().Format(time.RFC3339Nano) + "|" + title + "|" + body
}

func (d *Dispatcher) fire(key string, a notifications.Alert) {
	d.mu.Lock()
	id, ok := d.pending[key]
	delete(d.pending, key)
	d.mu.Unlock()
	if ok {
		d.cron.Remove(id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err := d.sender.Send(ctx, a)
	d.metrics.AlarmDelivered(d.sender.Name(), err)
	if err != nil {
		d.log.Error("alarm delivery failed", map[string]any{
			"title":  a.Title,
			"due_at": a.DueAt.Format(time.RFC3339),
			"error":  err,
		})
		return
	}
	d.log.Debug("alarm delivered", map[string]any{"title": a.Title})
}
