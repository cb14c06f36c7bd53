package notification

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailSender delivers emergency alerts to a user's contacts.
type EmailSender interface {
	Send(to, subject, body string) error
}

type SendgridSender struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *zap.Logger
}

func NewSendgridSender(apiKey, fromEmail, fromName string, log *zap.Logger) *SendgridSender {
	return &SendgridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
		log:    log,
	}
}

func (s *SendgridSender) Send(to, subject, body string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), body, body)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: send failed with status %d", resp.StatusCode)
	}

	s.log.Info("Alert email sent", zap.String("to", to), zap.Int("status", resp.StatusCode))
	return nil
}
