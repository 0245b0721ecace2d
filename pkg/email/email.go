package email

import (
	"context"
	"errors"
	"fmt"

	"celebrai-backend/config"
)

// ErrNotConfigured is returned by the sender used when no provider is set up.
var ErrNotConfigured = errors.New("email provider is not configured")

// Message is a single transactional HTML email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Address formats a display-name mailbox, "Name <addr>".
func Address(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

// NewSender picks Resend when an API key is configured and falls back to
// SMTP. With neither, every Send fails with ErrNotConfigured.
func NewSender(cfg *config.Config) Sender {
	if cfg.ResendAPIKey != "" {
		return NewResendSender(cfg.ResendAPIKey)
	}
	smtpSender := NewSMTPSender(cfg)
	if smtpSender.IsConfigured() {
		return smtpSender
	}
	return disabledSender{}
}

type disabledSender struct{}

func (disabledSender) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}
