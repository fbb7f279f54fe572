package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Register, donate, get approved, and show up in the reports
func TestDonationLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, &RegisterInput{
		Name:       "Maria da Silva",
		Email:      "maria@example.com",
		Password:   "senha-segura-1",
		PersonType: "Individual",
		Document:   "52998224725",
	})
	require.NoError(t, err)

	login, err := f.auth.Login(ctx, &LoginInput{Email: "maria@example.com", Password: "senha-segura-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	var ref string
	f.gateway.On("CreateCheckout", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { ref = args.Get(1).(CheckoutRequest).ExternalReference }).
		Return(&CheckoutSession{PreferenceID: "pref-9", InitPoint: "https://checkout.example/pref-9"}, nil)

	_, err = f.donations.CreateIntent(ctx, user.ID, decimal.RequireFromString("150.00"))
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	f.gateway.On("GetPayment", mock.Anything, int64(555)).Return(approvedState(ref), nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(e Email) bool {
		return e.ToAddress == "maria@example.com"
	})).Return(nil)

	outcome, err := f.webhook.HandleNotification(ctx, paymentNotification("555"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	f.mailer.AssertNumberOfCalls(t, "Send", 1)

	mine, err := f.donations.MyDonations(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Valor.Equal(decimal.RequireFromString("150.00")))

	now := time.Now().UTC()
	totals, err := f.reports.GetPeriodTotals(ctx, now.Year(), "mensal", int(now.Month()))
	require.NoError(t, err)
	assert.True(t, totals.TotalArrecadado.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, totals.TotalLiquido.Equal(decimal.RequireFromString("142.50")))
	assert.Equal(t, int64(1), totals.TotalDoacoesAprovadas)

	years, err := f.reports.GetDistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{now.Year()}, years)
}
