package channel

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/otpsender/internal/pkg/mail"
)

// EmailConfig configures the email channel.
type EmailConfig struct {
	// From is the sender address.
	From string
	// Subject is the subject line for code emails.
	Subject string
}

// Email delivers codes over SMTP through the mail package.
type Email struct {
	mailer mail.Mail
	cfg    EmailConfig
}

// NewEmail constructs the email channel.
func NewEmail(mailer mail.Mail, cfg EmailConfig) *Email {
	if cfg.Subject == "" {
		cfg.Subject = "Your verification code"
	}

	return &Email{mailer: mailer, cfg: cfg}
}

// Name returns the channel identifier.
func (*Email) Name() string {
	return NameEmail
}

// Available reports whether a mailer and sender address are configured.
func (e *Email) Available() bool {
	return e.mailer != nil && e.cfg.From != ""
}

// Send emails the code to the destination address.
func (e *Email) Send(ctx context.Context, destination, code string) error {
	err := e.mailer.Send(ctx, mail.Message{
		From:     e.cfg.From,
		To:       []string{destination},
		Subject:  e.cfg.Subject,
		TextBody: fmt.Sprintf("Your verification code is: %s", code),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}
