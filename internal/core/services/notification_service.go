package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"imc-donations/internal/adapters/persistence/models"
)

const sendTimeout = 10 * time.Second

// NotificationService sends donor-facing emails
type NotificationService struct {
	mailer Mailer
}

// NewNotificationService creates a new notification service
func NewNotificationService(mailer Mailer) *NotificationService {
	return &NotificationService{mailer: mailer}
}

// NotifyDonationApproved thanks the donor of an approved payment.
// The payment's Donor must be loaded.
func (s *NotificationService) NotifyDonationApproved(ctx context.Context, payment *models.Payment) error {
	donor := payment.Donor
	if donor == nil {
		return fmt.Errorf("payment %d has no donor loaded", payment.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	amount := payment.GrossAmount.StringFixed(2)
	return s.mailer.Send(ctx, Email{
		ToAddress: donor.Email,
		ToName:    donor.Name,
		Subject:   "Sua doação foi recebida!",
		HTML: fmt.Sprintf("Olá %s,<br><br>"+
			"Recebemos sua doação no valor de R$ %s. "+
			"Sua contribuição é muito importante e faz toda a diferença para nós.<br><br>"+
			"Muito obrigado!<br>"+
			"Equipe Instituto Maria Claro", html.EscapeString(donor.Name), amount),
		PlainText: fmt.Sprintf("Olá %s, Recebemos sua doação no valor de R$ %s. "+
			"Sua contribuição é muito importante e faz toda a diferença para nós. "+
			"Muito obrigado! Equipe Instituto Maria Claro", donor.Name, amount),
	})
}
