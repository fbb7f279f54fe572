package services

import (
	"context"
	"sort"
	"time"

	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

// Placeholders for donors that no longer resolve
const (
	AnonymousDonorName  = "Doador Anônimo/Excluído"
	AnonymousDonorEmail = "N/A"
)

// ReportService aggregates approved payments. Every call reads the ledger.
type ReportService struct {
	paymentRepo repositories.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(paymentRepo repositories.PaymentRepository) *ReportService {
	return &ReportService{paymentRepo: paymentRepo}
}

// PeriodTotals is the fundraising report for one period
type PeriodTotals struct {
	TotalArrecadado       decimal.Decimal `json:"totalArrecadado"`
	TotalLiquido          decimal.Decimal `json:"totalLiquido"`
	TotalDoacoesAprovadas int64           `json:"totalDoacoesAprovadas"`
}

// DonationItem is one row of the approved donation listing
type DonationItem struct {
	PagamentoID  uint                `json:"pagamentoId"`
	Valor        decimal.Decimal     `json:"valor"`
	ValorLiquido decimal.NullDecimal `json:"valorLiquido"`
	Status       string              `json:"status"`
	DataCriacao  time.Time           `json:"dataCriacao"`
	DoadorID     uint                `json:"doadorId"`
	DoadorNome   string              `json:"doadorNome"`
	DoadorEmail  string              `json:"doadorEmail"`
}

// PagedDonations is a page of approved donations with totals over the
// whole approved set
type PagedDonations struct {
	Items                  []DonationItem  `json:"items"`
	TotalCount             int64           `json:"totalCount"`
	TotalArrecadadoBruto   decimal.Decimal `json:"totalArrecadadoBruto"`
	TotalArrecadadoLiquido decimal.Decimal `json:"totalArrecadadoLiquido"`
}

// GetPeriodTotals sums approved payments created inside the period
func (s *ReportService) GetPeriodTotals(ctx context.Context, year int, kind string, index int) (*PeriodTotals, error) {
	periodKind, err := domain.ParsePeriodKind(kind)
	if err != nil {
		return nil, err
	}
	start, end, err := domain.PeriodInterval(year, periodKind, index)
	if err != nil {
		return nil, err
	}

	totals, err := s.paymentRepo.SumApproved(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &PeriodTotals{
		TotalArrecadado:       totals.Gross,
		TotalLiquido:          totals.Net,
		TotalDoacoesAprovadas: totals.Count,
	}, nil
}

// GetPagedApprovedDonations pages approved donations, newest first
func (s *ReportService) GetPagedApprovedDonations(ctx context.Context, pageNumber, pageSize int) (*PagedDonations, error) {
	params := pagination.Normalize(pageNumber, pageSize, pagination.DefaultDonationPageSize)

	totals, err := s.paymentRepo.SumApproved(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListApproved(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]DonationItem, 0, len(payments))
	for _, p := range payments {
		item := DonationItem{
			PagamentoID:  p.ID,
			Valor:        p.GrossAmount,
			ValorLiquido: p.NetAmount,
			Status:       p.Status,
			DataCriacao:  p.CreatedAt,
			DoadorNome:   AnonymousDonorName,
			DoadorEmail:  AnonymousDonorEmail,
		}
		if p.DonorID != nil {
			item.DoadorID = *p.DonorID
		}
		if p.Donor != nil {
			item.DoadorNome = p.Donor.Name
			item.DoadorEmail = p.Donor.Email
		}
		items = append(items, item)
	}

	return &PagedDonations{
		Items:                  items,
		TotalCount:             totals.Count,
		TotalArrecadadoBruto:   totals.Gross,
		TotalArrecadadoLiquido: totals.Net,
	}, nil
}

// GetDistinctYears lists the years with approved donations, newest first
func (s *ReportService) GetDistinctYears(ctx context.Context) ([]int, error) {
	times, err := s.paymentRepo.ApprovedCreationTimes(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, t := range times {
		y := t.UTC().Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}
