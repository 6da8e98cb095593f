// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"

	"github.com/calltechcare/backend-go/config"
	"gopkg.in/gomail.v2"
)

// Mailer represents an email sender.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

// New creates a Mailer from the process configuration.
func New() *Mailer {
	return &Mailer{
		from: config.C.SMTPFrom,
		dialer: gomail.NewDialer(
			config.C.SMTPHost,
			config.C.SMTPPort,
			config.C.SMTPUsername,
			config.C.SMTPPassword,
		),
	}
}

// Send sends a single email.
func (m *Mailer) Send(to []string, subject, body, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	if htmlBody != "" {
		msg.SetBody("text/html", htmlBody)
		if body != "" {
			msg.AddAlternative("text/plain", body)
		}
	} else {
		msg.SetBody("text/plain", body)
	}

	return m.dialer.DialAndSend(msg)
}

// SendSimple sends a plain-text email.
func (m *Mailer) SendSimple(to, subject, body string) error {
	return m.Send([]string{to}, subject, body, "")
}
