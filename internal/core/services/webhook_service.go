package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentTopic is the only notification topic that is reconciled
const PaymentTopic = "payment"

// Outcome is what happened to one notification
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeMalformed Outcome = "malformed"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeApplied   Outcome = "applied"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// Notification is an inbound provider callback. Only Topic and Resource
// are read for reconciliation; the provider API is the source of truth.
type Notification struct {
	Topic     string
	Resource  string
	RequestID string // x-request-id header
	Signature string // x-signature header
	Payload   []byte
}

// ApprovalNotifier is told about payments that just became approved
type ApprovalNotifier interface {
	NotifyDonationApproved(ctx context.Context, payment *models.Payment) error
}

// WebhookService reconciles provider notifications with the payment ledger
type WebhookService struct {
	paymentRepo repositories.PaymentRepository
	eventRepo   repositories.WebhookEventRepository
	gateway     PaymentGateway
	notifier    ApprovalNotifier
	secret      string
	now         func() time.Time
}

// NewWebhookService creates a new webhook service. An empty secret
// disables signature checks.
func NewWebhookService(
	paymentRepo repositories.PaymentRepository,
	eventRepo repositories.WebhookEventRepository,
	gateway PaymentGateway,
	notifier ApprovalNotifier,
	secret string,
) *WebhookService {
	return &WebhookService{
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		gateway:     gateway,
		notifier:    notifier,
		secret:      secret,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// HandleNotification runs one notification through the reconciliation
// state machine. A nil error means the provider should get a 2xx.
// ErrMalformedResource and ErrInvalidSignature are client errors; any
// other error should make the provider redeliver.
func (s *WebhookService) HandleNotification(ctx context.Context, n Notification) (Outcome, error) {
	event := &models.WebhookEvent{
		Topic:      n.Topic,
		Resource:   n.Resource,
		ReceivedAt: s.now(),
	}
	if len(n.Payload) > 0 {
		event.Payload = datatypes.JSON(n.Payload)
	}

	outcome, err := s.handle(ctx, n, event)

	event.Outcome = string(outcome)
	if err != nil {
		event.Error = err.Error()
	}
	s.record(ctx, event)

	return outcome, err
}

func (s *WebhookService) handle(ctx context.Context, n Notification, event *models.WebhookEvent) (Outcome, error) {
	// 1. Only payment notifications with a resource are processed
	if n.Topic != PaymentTopic || strings.TrimSpace(n.Resource) == "" {
		return OutcomeIgnored, nil
	}

	// 2. Trailing path segment is the provider payment id
	paymentID, err := parseResourceID(n.Resource)
	if err != nil {
		logger.Log.Warn("malformed notification resource", zap.String("resource", n.Resource))
		return OutcomeMalformed, domain.ErrMalformedResource
	}
	event.ProviderPaymentID = &paymentID

	// 3. Authenticity, when a secret is configured
	if s.secret != "" && !verifySignature(s.secret, n.Signature, n.RequestID, strconv.FormatInt(paymentID, 10)) {
		logger.Log.Warn("notification signature rejected", zap.Int64("provider_payment_id", paymentID))
		return OutcomeFailed, domain.ErrInvalidSignature
	}

	// 4. Authoritative state from the provider
	pp, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		logger.Log.Error("fetching provider payment failed",
			zap.Int64("provider_payment_id", paymentID),
			zap.Error(err),
		)
		return OutcomeFailed, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	// 5-8. Ledger update and notification
	return s.Reconcile(ctx, pp)
}

// Reconcile applies authoritative provider state to the matching ledger row.
// The row is locked for the whole check-and-update so concurrent deliveries
// for the same payment serialise; an approved row is never touched again
// and a provider status that is still pending is not written.
// The thank-you email is sent only after the commit and its failure is
// logged, never returned.
func (s *WebhookService) Reconcile(ctx context.Context, pp *ProviderPayment) (Outcome, error) {
	if pp.ExternalReference == "" {
		return OutcomeUnmatched, nil
	}

	outcome := OutcomeUnmatched
	var settled *models.Payment

	err := s.paymentRepo.WithTx(ctx, func(tx repositories.PaymentRepository) error {
		payment, err := tx.GetByExternalReferenceForUpdate(ctx, pp.ExternalReference)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				outcome = OutcomeUnmatched
				return nil
			}
			return err
		}

		if domain.ParseStatus(payment.Status).IsApproved() {
			outcome = OutcomeDuplicate
			return nil
		}

		// Nothing was paid yet; leave the row as the sweeper expects it
		if domain.ParseStatus(pp.Status).IsPending() {
			outcome = OutcomeUnchanged
			return nil
		}

		applyProviderState(payment, pp, s.now())
		if err := tx.Update(ctx, payment); err != nil {
			return err
		}

		outcome = OutcomeApplied
		settled = payment
		return nil
	})
	if err != nil {
		logger.Log.Error("ledger update failed",
			zap.String("external_reference", pp.ExternalReference),
			zap.Error(err),
		)
		return OutcomeFailed, err
	}

	switch outcome {
	case OutcomeUnmatched:
		logger.Log.Info("notification for unknown payment", zap.String("external_reference", pp.ExternalReference))
	case OutcomeDuplicate:
		logger.Log.Info("payment already approved, notification absorbed", zap.String("external_reference", pp.ExternalReference))
	case OutcomeUnchanged:
		logger.Log.Debug("payment still pending at provider", zap.String("external_reference", pp.ExternalReference))
	case OutcomeApplied:
		logger.Log.Info("payment reconciled",
			zap.Uint("payment_id", settled.ID),
			zap.String("status", settled.Status),
		)
		if domain.ParseStatus(settled.Status).IsApproved() && settled.Donor != nil {
			if err := s.notifier.NotifyDonationApproved(ctx, settled); err != nil {
				logger.Log.Warn("payment approved but thank-you email failed",
					zap.Uint("payment_id", settled.ID),
					zap.String("donor_email", settled.Donor.Email),
					zap.Error(err),
				)
			}
		}
	}

	return outcome, nil
}

// applyProviderState copies settlement fields onto the local row.
// Gross amount and external reference are never touched.
func applyProviderState(payment *models.Payment, pp *ProviderPayment, now time.Time) {
	payment.Status = domain.ParseStatus(pp.Status).String()
	providerID := pp.ID
	payment.ProviderPaymentID = &providerID
	payment.UpdatedAt = &now

	if pp.PayerIdentificationType != "" || pp.PayerIdentificationNumber != "" {
		idType := pp.PayerIdentificationType
		idNumber := domain.NormalizePayerIdentification(pp.PayerIdentificationNumber)
		payment.PayerIdentificationType = &idType
		payment.PayerIdentificationNumber = &idNumber
	}

	if pp.PaymentTypeID != "" {
		paymentType := pp.PaymentTypeID
		payment.PaymentType = &paymentType
	}

	if pp.NetAmount.Valid {
		payment.NetAmount = decimal.NewNullDecimal(pp.NetAmount.Decimal.Round(2))
	}
}

// Audit log page bounds
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 200
)

// RecentEvents returns the newest entries of the notification log
func (s *WebhookService) RecentEvents(ctx context.Context, limit int) ([]*models.WebhookEvent, error) {
	if limit < 1 {
		limit = DefaultEventLimit
	}
	if limit > MaxEventLimit {
		limit = MaxEventLimit
	}
	return s.eventRepo.ListRecent(ctx, limit)
}

func (s *WebhookService) record(ctx context.Context, event *models.WebhookEvent) {
	if s.eventRepo == nil {
		return
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		logger.Log.Warn("failed to record webhook event", zap.Error(err))
	}
}

// parseResourceID reads the last path segment of a resource URL (or a bare
// id) as an int64
func parseResourceID(resource string) (int64, error) {
	resource = strings.TrimSpace(resource)
	seg := resource[strings.LastIndex(resource, "/")+1:]
	if i := strings.IndexAny(seg, "?#"); i >= 0 {
		seg = seg[:i]
	}
	return strconv.ParseInt(seg, 10, 64)
}

// verifySignature checks an x-signature header of the form "ts=<ts>,v1=<hex>"
// against HMAC-SHA256 of "id:<id>;request-id:<request id>;ts:<ts>;".
func verifySignature(secret, header, requestID, dataID string) bool {
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := "id:" + strings.ToLower(dataID) + ";"
	if requestID != "" {
		manifest += "request-id:" + requestID + ";"
	}
	manifest += "ts:" + ts + ";"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(v1)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
