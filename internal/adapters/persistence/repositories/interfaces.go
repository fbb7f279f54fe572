package repositories

import (
	"context"
	"time"

	"imc-donations/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// UserFilter narrows the admin user listing. Empty fields are ignored.
type UserFilter struct {
	Search     string
	Role       string
	PersonType string
}

// UserStats summarises the identity store
type UserStats struct {
	Total        int64            `json:"total"`
	ByRole       map[string]int64 `json:"byRole"`
	ByPersonType map[string]int64 `json:"byPersonType"`
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByDocument(ctx context.Context, document string, excludeID uint) (bool, error)
	Stats(ctx context.Context) (*UserStats, error)
}

// ApprovedTotals aggregates approved payments
type ApprovedTotals struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
	Count int64
}

// PaymentRepository defines the payment ledger
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	GetByExternalReference(ctx context.Context, ref string) (*models.Payment, error)
	// GetByExternalReferenceForUpdate row-locks the payment for the rest of
	// the surrounding transaction and preloads its donor.
	GetByExternalReferenceForUpdate(ctx context.Context, ref string) (*models.Payment, error)
	ListApprovedByDonor(ctx context.Context, donorID uint) ([]*models.Payment, error)
	ListApproved(ctx context.Context, offset, limit int) ([]*models.Payment, error)
	// SumApproved aggregates approved payments created in [from, to).
	// Zero times leave that side of the interval open.
	SumApproved(ctx context.Context, from, to time.Time) (*ApprovedTotals, error)
	ApprovedCreationTimes(ctx context.Context) ([]time.Time, error)
	ListOpenCreatedBetween(ctx context.Context, from, to time.Time, limit int) ([]*models.Payment, error)
	// WithTx runs fn against a repository bound to a single transaction
	WithTx(ctx context.Context, fn func(tx PaymentRepository) error) error
}

// WebhookEventRepository stores the notification audit log
type WebhookEventRepository interface {
	Create(ctx context.Context, event *models.WebhookEvent) error
	ListRecent(ctx context.Context, limit int) ([]*models.WebhookEvent, error)
}
