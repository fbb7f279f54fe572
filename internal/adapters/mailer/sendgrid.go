// Package mailer implements services.Mailer.
package mailer

import (
	"context"
	"fmt"

	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer sends mail through the SendGrid v3 API
type SendGridMailer struct {
	client   *sendgrid.Client
	fromAddr string
	fromName string
}

// NewSendGridMailer creates a SendGrid mailer
func NewSendGridMailer(apiKey, fromAddr, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromAddr: fromAddr,
		fromName: fromName,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, email services.Email) error {
	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(email.ToName, email.ToAddress)
	msg := mail.NewSingleEmail(from, email.Subject, to, email.PlainText, email.HTML)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}

	logger.Log.Info("email sent",
		zap.String("to", email.ToAddress),
		zap.String("subject", email.Subject),
	)
	return nil
}

// NoopMailer only logs. Used when no API key is configured.
type NoopMailer struct{}

func (NoopMailer) Send(_ context.Context, email services.Email) error {
	logger.Log.Warn("email delivery disabled, message dropped",
		zap.String("to", email.ToAddress),
		zap.String("subject", email.Subject),
	)
	return nil
}

// New picks SendGrid when apiKey is set and the no-op mailer otherwise
func New(apiKey, fromAddr, fromName string) services.Mailer {
	if apiKey == "" {
		return NoopMailer{}
	}
	return NewSendGridMailer(apiKey, fromAddr, fromName)
}
