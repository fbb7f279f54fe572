package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// CheckoutRequest describes a hosted checkout session for one donation
type CheckoutRequest struct {
	ExternalReference string
	Title             string
	Description       string
	Amount            decimal.Decimal
	CurrencyID        string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
	NotificationURL   string
}

// CheckoutSession is the provider's answer to CreateCheckout
type CheckoutSession struct {
	PreferenceID string
	InitPoint    string
}

// ProviderPayment is the authoritative payment state fetched from the
// provider. NetAmount is only valid when the provider sent a settlement
// breakdown.
type ProviderPayment struct {
	ID                        int64
	Status                    string
	ExternalReference         string
	PaymentTypeID             string
	PayerIdentificationType   string
	PayerIdentificationNumber string
	NetAmount                 decimal.NullDecimal
}

// PaymentGateway is the payment provider as seen by the services.
// A single client is built at startup and injected.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetPayment(ctx context.Context, id int64) (*ProviderPayment, error)
	// FindPaymentByExternalReference returns the most recent provider
	// payment for ref, or nil when the provider has none.
	FindPaymentByExternalReference(ctx context.Context, ref string) (*ProviderPayment, error)
}

// Email is one outgoing transactional message
type Email struct {
	ToAddress string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
