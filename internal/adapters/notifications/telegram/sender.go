package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medassist/internal/ports/notifications"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Telegram acepta ~1 mensaje por segundo por chat.
const defaultInterval = time.Second

// botAPI es lo que usamos de *tgbotapi.BotAPI.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sender envía cada alerta como mensaje a un chat fijo.
type Sender struct {
	api     botAPI
	chatID  int64
	limiter *rate.Limiter
}

func New(token string, chatID int64) (*Sender, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram: token required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram: chat id required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return newSender(api, chatID, rate.NewLimiter(rate.Every(defaultInterval), 1)), nil
}

func newSender(api botAPI, chatID int64, limiter *rate.Limiter) *Sender {
	return &Sender{api: api, chatID: chatID, limiter: limiter}
}

func (s *Sender) Name() string { return "telegram" }

func (s *Sender) Send(ctx context.Context, a notifications.Alert) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram: rate limit: %w", err)
	}

	msg := tgbotapi.NewMessage(s.chatID, formatMessage(a))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	return nil
}

// formatMessage escapa el texto: nombres como "Vitamina_D3" rompen el Markdown.
func formatMessage(a notifications.Alert) string {
	return fmt.Sprintf("*%s*\n%s (%s)",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, a.Title),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, a.Body),
		a.DueAt.Format("15:04"),
	)
}
