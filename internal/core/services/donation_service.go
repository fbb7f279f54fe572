package services

import (
	"context"
	"fmt"
	"time"

	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/config"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Checkout item shown on the provider page
const (
	DonationTitle       = "Doação para o Instituto Maria Claro"
	DonationDescription = "Sua contribuição ajuda a manter nossos projetos."
	DonationCurrency    = "BRL"
)

// DonationService creates donation intents and lists a donor's donations
type DonationService struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	gateway     PaymentGateway
	cfg         *config.Config
}

// NewDonationService creates a new donation service
func NewDonationService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	gateway PaymentGateway,
	cfg *config.Config,
) *DonationService {
	return &DonationService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		cfg:         cfg,
	}
}

// CreateIntentInput is the body of a checkout request
type CreateIntentInput struct {
	Valor decimal.Decimal `json:"valor"`
}

// IntentResponse carries the hosted checkout URL
type IntentResponse struct {
	InitPoint string `json:"initPoint"`
}

// DonationSummary is one approved donation of a donor
type DonationSummary struct {
	DataCriacao time.Time       `json:"dataCriacao"`
	Valor       decimal.Decimal `json:"valor"`
	Status      string          `json:"status"`
}

// CreateIntent opens a provider checkout for donorID and records the
// pending payment. Nothing is written locally when the provider fails.
func (s *DonationService) CreateIntent(ctx context.Context, donorID uint, amount decimal.Decimal) (*IntentResponse, error) {
	if err := s.validateAmount(amount); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUnauthorized
	}

	externalReference := uuid.NewString()

	session, err := s.gateway.CreateCheckout(ctx, CheckoutRequest{
		ExternalReference: externalReference,
		Title:             DonationTitle,
		Description:       DonationDescription,
		Amount:            amount,
		CurrencyID:        DonationCurrency,
		SuccessURL:        s.cfg.SuccessURL(),
		FailureURL:        s.cfg.FailureURL(),
		PendingURL:        s.cfg.PendingURL(),
		NotificationURL:   s.cfg.MercadoPago.WebhookURL,
	})
	if err != nil {
		logger.Log.Error("checkout creation failed",
			zap.String("external_reference", externalReference),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	payment := &models.Payment{
		ExternalReference: externalReference,
		GrossAmount:       amount,
		Status:            domain.Pending.String(),
		PreferenceID:      session.PreferenceID,
		DonorID:           &donorID,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.Log.Info("donation intent created",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("donor_id", donorID),
		zap.String("external_reference", externalReference),
		zap.String("amount", amount.StringFixed(2)),
	)
	return &IntentResponse{InitPoint: session.InitPoint}, nil
}

func (s *DonationService) validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("O valor da doação deve ser maior que zero.")
	}
	if amount.GreaterThan(s.cfg.Donation.MaxAmount) {
		return domain.NewValidationError(fmt.Sprintf("O valor da doação não pode exceder R$ %s.", s.cfg.Donation.MaxAmount.StringFixed(2)))
	}
	if !amount.Equal(amount.Truncate(2)) {
		return domain.NewValidationError("O valor da doação deve ter no máximo duas casas decimais.")
	}
	return nil
}

// MyDonations lists the caller's approved donations, newest first
func (s *DonationService) MyDonations(ctx context.Context, donorID uint) ([]DonationSummary, error) {
	return s.approvedByDonor(ctx, donorID)
}

// DonationsByUser lists another user's approved donations
func (s *DonationService) DonationsByUser(ctx context.Context, userID uint) ([]DonationSummary, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return s.approvedByDonor(ctx, userID)
}

func (s *DonationService) approvedByDonor(ctx context.Context, donorID uint) ([]DonationSummary, error) {
	payments, err := s.paymentRepo.ListApprovedByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	out := make([]DonationSummary, 0, len(payments))
	for _, p := range payments {
		out = append(out, DonationSummary{
			DataCriacao: p.CreatedAt,
			Valor:       p.GrossAmount,
			Status:      p.Status,
		})
	}
	return out, nil
}
