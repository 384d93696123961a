package mailer

import (
	"fmt"

	"astralis-ops-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email collaborator. Delivery is attempted once;
// failures are surfaced to the caller, never retried here.
type Mailer interface {
	Send(email Email) error
	SendHTML(to []string, subject, htmlBody string) error
}

// Email represents an email message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// SMTPMailer sends email through an SMTP relay.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

// New creates a new SMTP mailer from application configuration.
func New(cfg *config.Config) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}
	if cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("smtp from address is not configured")
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &SMTPMailer{
		from:   cfg.SMTPFrom,
		dialer: dialer,
	}, nil
}

// Send sends a single email.
func (m *SMTPMailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return m.dialer.DialAndSend(msg)
}

// SendHTML sends an HTML email.
func (m *SMTPMailer) SendHTML(to []string, subject, htmlBody string) error {
	return m.Send(Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}
