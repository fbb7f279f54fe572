package repositories

import (
	"context"
	"errors"
	"time"

	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// Update saves settlement fields. The donor association is never written.
func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Preload("Donor").Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByExternalReference(ctx context.Context, ref string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Preload("Donor").Where("external_reference = ?", ref).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByExternalReferenceForUpdate(ctx context.Context, ref string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_reference = ?", ref).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	// Loaded separately so the lock only covers the payment row
	if payment.DonorID != nil {
		var donor models.User
		err := r.db.WithContext(ctx).Where("id = ?", *payment.DonorID).First(&donor).Error
		switch {
		case err == nil:
			payment.Donor = &donor
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}
	return &payment, nil
}

// ListApprovedByDonor returns a donor's approved payments, newest first
func (r *paymentRepository) ListApprovedByDonor(ctx context.Context, donorID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("donor_id = ? AND status = ?", donorID, domain.RawApproved).
		Order("created_at DESC").Order("id DESC").
		Find(&payments).Error
	return payments, err
}

// ListApproved pages through approved payments, newest first. Donors that
// were deleted are left nil by the preload.
func (r *paymentRepository) ListApproved(ctx context.Context, offset, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ?", domain.RawApproved).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	return payments, err
}

type approvedSums struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
	Total int64
}

func (r *paymentRepository) SumApproved(ctx context.Context, from, to time.Time) (*ApprovedTotals, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("status = ?", domain.RawApproved)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to.UTC())
	}

	var sums approvedSums
	err := query.Select(
		"COALESCE(SUM(gross_amount), 0) AS gross, " +
			"COALESCE(SUM(COALESCE(net_amount, 0)), 0) AS net, " +
			"COUNT(*) AS total",
	).Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	return &ApprovedTotals{
		Gross: sums.Gross.Round(2),
		Net:   sums.Net.Round(2),
		Count: sums.Total,
	}, nil
}

func (r *paymentRepository) ApprovedCreationTimes(ctx context.Context) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", domain.RawApproved).
		Pluck("created_at", &times).Error
	return times, err
}

// ListOpenCreatedBetween feeds the sweeper, oldest first. Status is compared
// case-insensitively since the provider writes lower-case values.
func (r *paymentRepository) ListOpenCreatedBetween(ctx context.Context, from, to time.Time, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("LOWER(status) IN ? AND created_at >= ? AND created_at < ?", domain.OpenStatuses, from.UTC(), to.UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) WithTx(ctx context.Context, fn func(tx PaymentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&paymentRepository{db: tx})
	})
}
