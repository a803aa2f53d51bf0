// Package email delivers transactional mail through a pluggable provider.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"prelaunch/internal/config"
)

// ErrNoRecipient is returned when a message has no To address.
var ErrNoRecipient = errors.New("email: recipient is required")

// Message is a single HTML email. An empty From falls back to the sender's default.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message and returns the provider's delivery id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// New builds the Sender selected by cfg.EmailProvider().
func New(ctx context.Context, cfg config.EmailConfig, log *slog.Logger) (Sender, error) {
	switch p := cfg.EmailProvider(); p {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("email: RESEND_API_KEY is required for provider resend")
		}
		httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
		return NewResendSender(cfg.ResendAPIKey, cfg.From, httpClient), nil
	case "ses":
		return NewSESSender(ctx, cfg)
	case "noop":
		return NewNoopSender(log), nil
	default:
		return nil, fmt.Errorf("email: unknown provider %q", p)
	}
}
