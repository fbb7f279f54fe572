package services

import (
	"context"
	"testing"
	"time"

	"imc-donations/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPeriodTotals_QuarterBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donor := f.createUser(t, "Ana Lima", "ana@example.com", "Donor")

	f.createPayment(t, donor, "approved", "100.00", time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC))
	f.createPayment(t, donor, "approved", "200.00", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	f.createPayment(t, donor, "approved", "300.00", time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC))
	f.createPayment(t, donor, "approved", "400.00", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	f.createPayment(t, donor, "PENDING", "999.00", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	q2, err := f.reports.GetPeriodTotals(ctx, 2024, "trimestral", 2)
	require.NoError(t, err)
	assert.True(t, q2.TotalArrecadado.Equal(decimal.NewFromInt(500)), q2.TotalArrecadado.String())
	assert.Equal(t, int64(2), q2.TotalDoacoesAprovadas)
	assert.True(t, q2.TotalLiquido.IsZero())

	q1, err := f.reports.GetPeriodTotals(ctx, 2024, "trimestral", 1)
	require.NoError(t, err)
	assert.True(t, q1.TotalArrecadado.Equal(decimal.NewFromInt(100)))

	s2, err := f.reports.GetPeriodTotals(ctx, 2024, "semestral", 2)
	require.NoError(t, err)
	assert.True(t, s2.TotalArrecadado.Equal(decimal.NewFromInt(400)))

	empty, err := f.reports.GetPeriodTotals(ctx, 2023, "mensal", 12)
	require.NoError(t, err)
	assert.True(t, empty.TotalArrecadado.IsZero())
	assert.Zero(t, empty.TotalDoacoesAprovadas)
}

func TestGetPeriodTotals_InvalidPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.reports.GetPeriodTotals(ctx, 2024, "mensal", 13)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.reports.GetPeriodTotals(ctx, 2024, "trimestral", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.reports.GetPeriodTotals(ctx, 2024, "anual", 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetPagedApprovedDonations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.createUser(t, "Ana Lima", "ana@example.com", "Donor")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		f.createPayment(t, ana, "approved", "10.00", base.Add(time.Duration(i)*time.Hour))
	}
	f.createPayment(t, ana, "PENDING", "10.00", base)

	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		got, err := f.reports.GetPagedApprovedDonations(ctx, page, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(25), got.TotalCount)
		assert.True(t, got.TotalArrecadadoBruto.Equal(decimal.NewFromInt(250)))
		for _, item := range got.Items {
			assert.False(t, seen[item.PagamentoID], "item repeated across pages")
			seen[item.PagamentoID] = true
			assert.Equal(t, "Ana Lima", item.DoadorNome)
		}
		if page < 3 {
			assert.Len(t, got.Items, 10)
		} else {
			assert.Len(t, got.Items, 5)
		}
	}
	assert.Len(t, seen, 25)

	first, err := f.reports.GetPagedApprovedDonations(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, base.Add(24*time.Hour).Unix(), first.Items[0].DataCriacao.Unix())
}

func TestGetPagedApprovedDonations_OrphanFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gone := f.createUser(t, "Bia Rocha", "bia@example.com", "Donor")
	admin := f.createUser(t, "Admin", "admin@example.com", "Administrator")

	f.createPayment(t, gone, "approved", "30.00", testTime(2024, 1, 1))
	f.createPayment(t, nil, "approved", "20.00", testTime(2024, 1, 2))
	require.NoError(t, f.users.DeleteUser(ctx, Actor{UserID: admin.ID, Role: domain.RoleAdministrator}, gone.ID))

	got, err := f.reports.GetPagedApprovedDonations(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	for _, item := range got.Items {
		assert.Equal(t, AnonymousDonorName, item.DoadorNome)
		assert.Equal(t, AnonymousDonorEmail, item.DoadorEmail)
	}
	assert.True(t, got.TotalArrecadadoBruto.Equal(decimal.NewFromInt(50)))
}

func TestGetDistinctYears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donor := f.createUser(t, "Ana Lima", "ana@example.com", "Donor")

	f.createPayment(t, donor, "approved", "1.00", testTime(2022, 5, 1))
	f.createPayment(t, donor, "approved", "1.00", testTime(2024, 5, 1))
	f.createPayment(t, donor, "approved", "1.00", testTime(2024, 6, 1))
	f.createPayment(t, donor, "PENDING", "1.00", testTime(2021, 6, 1))

	years, err := f.reports.GetDistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2022}, years)
}
