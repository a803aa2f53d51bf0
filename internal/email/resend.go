package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v2"
)

// resendEmails is the subset of the Resend client used here.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	emails resendEmails
	from   string
}

// NewResendSender creates a ResendSender. httpClient may be nil to use the library default.
func NewResendSender(apiKey, from string, httpClient *http.Client) *ResendSender {
	var client *resend.Client
	if httpClient != nil {
		client = resend.NewCustomClient(httpClient, apiKey)
	} else {
		client = resend.NewClient(apiKey)
	}
	return &ResendSender{emails: client.Emails, from: from}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if msg.To == "" {
		return "", ErrNoRecipient
	}
	from := msg.From
	if from == "" {
		from = s.from
	}

	sent, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	return sent.Id, nil
}

var _ Sender = (*ResendSender)(nil)
