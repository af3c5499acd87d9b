package cronalarm

import (
	"context"
	"time"

	"medassist/internal/platform/logger"
	"medassist/internal/ports/notifications"
)

// LogSender escribe la alerta en el log. Es el canal por defecto en dev.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, a notifications.Alert) error {
	s.log.Info(a.Title, map[string]any{
		"body":   a.Body,
		"due_at": a.DueAt.Format(time.RFC3339),
	})
	return nil
}
