package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medassist/internal/platform/httpclient"
	"medassist/internal/platform/logger"
	"medassist/internal/ports/notifications"

	"github.com/sony/gobreaker/v2"
)

// payload es el JSON que recibe el webhook.
type payload struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	DueAt time.Time `json:"due_at"`
}

type Options struct {
	Timeout time.Duration
	// FailuresToTrip fallas consecutivas que abren el circuito. Default 5.
	FailuresToTrip uint32
	// OpenFor tiempo que el circuito queda abierto antes de probar de nuevo. Default 30s.
	OpenFor time.Duration
	Logger  logger.Logger
}

// Sender publica cada alerta como POST JSON. Un circuit breaker corta los envíos
// mientras el destino sigue fallando.
type Sender struct {
	client *httpclient.Client
	cb     *gobreaker.CircuitBreaker[struct{}]
}

func New(url string, opts Options) (*Sender, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("webhook: url required")
	}
	client, err := httpclient.New(url, opts.Timeout)
	if err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	trip := opts.FailuresToTrip
	if trip == 0 {
		trip = 5
	}
	openFor := opts.OpenFor
	if openFor <= 0 {
		openFor = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "webhook",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= trip
		},
		// Un 4xx es un error nuestro, no del destino: no abre el circuito.
		IsSuccessful: func(err error) bool {
			var herr *httpclient.HTTPError
			if errors.As(err, &herr) {
				return !herr.Temporary()
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &Sender{client: client, cb: cb}, nil
}

func (s *Sender) Name() string { return "webhook" }

func (s *Sender) Send(ctx context.Context, a notifications.Alert) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.client.PostJSON(ctx, payload{
			Title: a.Title,
			Body:  a.Body,
			DueAt: a.DueAt,
		})
	})
	return err
}
