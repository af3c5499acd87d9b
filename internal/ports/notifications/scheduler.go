package notifications

import (
	"context"
	"time"
)

// Scheduler programa una alerta local de un solo disparo en dueAt.
// Llamadas duplicadas con los mismos parámetros son tolerables.
// Cancel identifica la alerta por los mismos parámetros; cancelar una que no
// existe no es un error.
type Scheduler interface {
	ScheduleOneShot(ctx context.Context, dueAt time.Time, title, body string) error
	Cancel(ctx context.Context, dueAt time.Time, title, body string) error
	CancelAll(ctx context.Context) error
}

// Alert es lo que se entrega cuando la alarma dispara.
type Alert struct {
	DueAt time.Time
	Title string
	Body  string
}

// Sender entrega una alerta por algún canal (log, webhook, telegram).
type Sender interface {
	Name() string
	Send(ctx context.Context, a Alert) error
}
