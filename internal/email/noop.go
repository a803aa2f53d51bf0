package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopSender logs instead of sending. Used when no provider is configured.
type NoopSender struct {
	log *slog.Logger
}

func NewNoopSender(log *slog.Logger) *NoopSender {
	if log == nil {
		log = slog.Default()
	}
	return &NoopSender{log: log}
}

func (s *NoopSender) Send(_ context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", ErrNoRecipient
	}
	id := "noop-" + uuid.NewString()
	s.log.Info("email_event", "event", "email_skipped", "email", msg.To, "subject", msg.Subject, "delivery_id", id)
	return id, nil
}

var _ Sender = (*NoopSender)(nil)
