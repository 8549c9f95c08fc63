package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"heavyrent-backend/internal/logger"
)

type sendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName, publicURL string) EmailService {
	return newEmailService(&sendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}, publicURL)
}

func (m *sendGridMailer) send(ctx context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(mail.NewEmail(m.fromName, m.from), subject, mail.NewEmail("", to), body, "")

	logger.ExternalServiceCall(ctx, "sendgrid", "send", "to", to, "subject", subject)
	response, err := m.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "send", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
