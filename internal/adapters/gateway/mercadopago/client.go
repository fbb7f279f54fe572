// Package mercadopago adapts the Mercado Pago SDK to services.PaymentGateway.
package mercadopago

import (
	"context"
	"fmt"

	"imc-donations/internal/core/services"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

// Client wraps the preference and payment SDK clients. It is built once at
// startup from the access token.
type Client struct {
	preferences preference.Client
	payments    payment.Client
}

// NewClient creates a Mercado Pago client
func NewClient(accessToken string) (*Client, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Client{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

// CreateCheckout creates a checkout preference with a single item
func (c *Client) CreateCheckout(ctx context.Context, req services.CheckoutRequest) (*services.CheckoutSession, error) {
	request := preference.Request{
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
		Items: []preference.ItemRequest{
			{
				Title:       req.Title,
				Description: req.Description,
				Quantity:    1,
				CurrencyID:  req.CurrencyID,
				UnitPrice:   req.Amount.InexactFloat64(),
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
	}

	resource, err := c.preferences.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &services.CheckoutSession{
		PreferenceID: resource.ID,
		InitPoint:    resource.InitPoint,
	}, nil
}

// GetPayment fetches a payment by provider id
func (c *Client) GetPayment(ctx context.Context, id int64) (*services.ProviderPayment, error) {
	resource, err := c.payments.Get(ctx, int(id))
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return toProviderPayment(resource), nil
}

// FindPaymentByExternalReference searches payments carrying ref and returns
// the last one, or nil
func (c *Client) FindPaymentByExternalReference(ctx context.Context, ref string) (*services.ProviderPayment, error) {
	result, err := c.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{
			"external_reference": ref,
			"sort":               "date_created",
			"criteria":           "desc",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("search payments %s: %w", ref, err)
	}
	if result == nil || len(result.Results) == 0 {
		return nil, nil
	}
	return toProviderPayment(&result.Results[0]), nil
}

func toProviderPayment(p *payment.Response) *services.ProviderPayment {
	out := &services.ProviderPayment{
		ID:                        int64(p.ID),
		Status:                    p.Status,
		ExternalReference:         p.ExternalReference,
		PaymentTypeID:             p.PaymentTypeID,
		PayerIdentificationType:   p.Payer.Identification.Type,
		PayerIdentificationNumber: p.Payer.Identification.Number,
	}
	// zero means the settlement breakdown has not been produced yet
	if p.TransactionDetails.NetReceivedAmount != 0 {
		out.NetAmount = decimal.NewNullDecimal(decimal.NewFromFloat(p.TransactionDetails.NetReceivedAmount).Round(2))
	}
	return out
}
