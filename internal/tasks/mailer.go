package tasks

import (
	"context"

	"ConferenceAPI/internal/logger"
)

// Mailer delivers a plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer records outgoing mail in the application log instead of
// delivering it.
type LogMailer struct {
	From string
}

func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Info("mail_sent", map[string]any{
		"from":    m.From,
		"to":      to,
		"subject": subject,
		"body":    body,
	})
	return nil
}

// MailTask wraps a Send call for the dispatcher.
func MailTask(m Mailer, to, subject, body string) Func {
	return func(ctx context.Context) error {
		return m.Send(ctx, to, subject, body)
	}
}
