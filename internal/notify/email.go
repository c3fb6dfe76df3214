package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// ErrNoRecipient is returned when a notice has no email address to send
// to.
var ErrNoRecipient = errors.New("notice has no recipient email")

// SMTPConfig holds the settings for the email notifier.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// EmailNotifier delivers debt notices over SMTP.
type EmailNotifier struct {
	cfg SMTPConfig
}

// NewEmailNotifier creates an SMTP-backed notifier.
func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// Notify sends one debt notice as a plain-text email.
func (s *EmailNotifier) Notify(_ context.Context, n Notice) error {
	if n.RecipientEmail == "" {
		return ErrNoRecipient
	}

	e := email.NewEmail()
	e.From = s.cfg.Sender
	e.To = []string{n.RecipientEmail}
	if n.Reminder {
		e.Subject = fmt.Sprintf("Reminder: you owe %s for %q", n.Amount.Format(), n.Description)
	} else {
		e.Subject = fmt.Sprintf("New shared expense: %q", n.Description)
	}

	name := n.RecipientName
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf("Hi %s,\n\n", name)
	if n.Reminder {
		body += fmt.Sprintf(
			"This is a reminder that you still owe %s to %s for %q.\n",
			n.Amount.Format(), n.CounterpartyName, n.Description,
		)
	} else {
		body += fmt.Sprintf(
			"%s added a shared expense %q. Your share is %s.\n",
			n.CounterpartyName, n.Description, n.Amount.Format(),
		)
	}
	body += "\nSplitledger"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
