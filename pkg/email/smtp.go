package email

import (
	"context"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"celebrai-backend/config"
)

// SMTPSender sends through a plain-auth SMTP relay (Brevo and similar).
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

// IsConfigured checks if the relay has host and credentials
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Send ignores ctx; net/smtp has no cancellation.
func (s *SMTPSender) Send(_ context.Context, msg Message) (string, error) {
	// relays reject foreign envelope senders, keep the display name only
	from := s.username
	if addr, err := mail.ParseAddress(msg.From); err == nil && addr.Name != "" {
		from = (&mail.Address{Name: addr.Name, Address: s.username}).String()
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)
	raw := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Message-ID: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		from,
		strings.Join(msg.To, ", "),
		mime.QEncoding.Encode("utf-8", msg.Subject),
		id,
		msg.HTML,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.username, msg.To, raw); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return id, nil
}
