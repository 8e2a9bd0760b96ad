package services

import (
	"context"
	"fmt"

	"finflow/internal/config"

	"github.com/wneessen/go-mail"
)

// MailMessage is a fully composed alert email ready for delivery.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// smtpTransport delivers mail over SMTP. Each send dials a fresh connection
// bounded by the configured timeout; alert volume is far too low to justify
// connection pooling.
type smtpTransport struct {
	cfg config.MailConfig
}

// NewSMTPTransport creates a MailTransport backed by the configured SMTP
// server
func NewSMTPTransport(cfg config.MailConfig) MailTransport {
	return &smtpTransport{cfg: cfg}
}

func (t *smtpTransport) Send(msg *MailMessage) (string, error) {
	m := mail.NewMsg()
	if err := m.From(t.cfg.From); err != nil {
		return "", fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return "", fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	m.SetMessageID()

	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithTimeout(t.cfg.SendTimeout),
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
		)
	}

	client, err := mail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create mail client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.SendTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return "", fmt.Errorf("failed to deliver mail: %w", err)
	}

	return m.GetMessageID(), nil
}
