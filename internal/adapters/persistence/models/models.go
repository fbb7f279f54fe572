package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Identity
// ============================================================

// User represents users table
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255;not null" json:"-"`
	Role            string         `gorm:"size:20;not null;default:'Donor';index" json:"role"`
	PersonType      *string        `gorm:"size:20" json:"person_type"`
	Document        *string        `gorm:"uniqueIndex;size:14" json:"document"`
	Phone           *string        `gorm:"size:15" json:"phone"`
	PostalCode      *string        `gorm:"size:9" json:"postal_code"`
	Address         *string        `gorm:"size:200" json:"address"`
	Neighborhood    *string        `gorm:"size:100" json:"neighborhood"`
	City            *string        `gorm:"size:100" json:"city"`
	State           *string        `gorm:"size:2" json:"state"`
	Gender          *string        `gorm:"size:50" json:"gender"`
	BusinessAddress *string        `gorm:"size:200" json:"business_address"`
	BirthDate       *time.Time     `gorm:"type:date" json:"birth_date"`
	RegisteredAt    time.Time      `gorm:"not null;autoCreateTime:false" json:"registered_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the public view of a user. It never carries the hash.
type UserResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	PersonType      *string    `json:"personType"`
	Document        *string    `json:"document"`
	Phone           *string    `json:"phone,omitempty"`
	PostalCode      *string    `json:"postalCode,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Neighborhood    *string    `json:"neighborhood,omitempty"`
	City            *string    `json:"city,omitempty"`
	State           *string    `json:"state,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	BusinessAddress *string    `json:"businessAddress,omitempty"`
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	RegisteredAt    time.Time  `json:"registeredAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		PersonType:      u.PersonType,
		Document:        u.Document,
		Phone:           u.Phone,
		PostalCode:      u.PostalCode,
		Address:         u.Address,
		Neighborhood:    u.Neighborhood,
		City:            u.City,
		State:           u.State,
		Gender:          u.Gender,
		BusinessAddress: u.BusinessAddress,
		BirthDate:       u.BirthDate,
		RegisteredAt:    u.RegisteredAt,
	}
}

// ============================================================
// Payment ledger
// ============================================================

// Payment is one donation checkout attempt. GrossAmount and
// ExternalReference are written once at creation.
type Payment struct {
	ID                        uint                `gorm:"primaryKey" json:"id"`
	ExternalReference         string              `gorm:"uniqueIndex;size:100;not null" json:"external_reference"`
	GrossAmount               decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"gross_amount"`
	NetAmount                 decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"net_amount"`
	PaymentType               *string             `gorm:"size:50" json:"payment_type"`
	Status                    string              `gorm:"size:50;not null;index" json:"status"`
	PreferenceID              string              `gorm:"size:100" json:"preference_id"`
	ProviderPaymentID         *int64              `gorm:"index" json:"provider_payment_id"`
	PayerIdentificationType   *string             `gorm:"size:10" json:"payer_identification_type"`
	PayerIdentificationNumber *string             `gorm:"size:20" json:"payer_identification_number"`
	DonorID                   *uint               `gorm:"index" json:"donor_id"`
	CreatedAt                 time.Time           `gorm:"not null;index" json:"created_at"`
	UpdatedAt                 *time.Time          `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	Donor *User `gorm:"foreignKey:DonorID;constraint:OnDelete:SET NULL" json:"donor,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// WebhookEvent records every provider notification and what was done with it
type WebhookEvent struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Topic             string         `gorm:"size:50" json:"topic"`
	Resource          string         `gorm:"size:255" json:"resource"`
	ProviderPaymentID *int64         `gorm:"index" json:"provider_payment_id"`
	Outcome           string         `gorm:"size:20;not null;index" json:"outcome"`
	Error             string         `gorm:"type:text" json:"error,omitempty"`
	Payload           datatypes.JSON `json:"payload"`
	ReceivedAt        time.Time      `gorm:"not null;index" json:"received_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// AutoMigrate creates or updates every table owned by this service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Payment{},
		&WebhookEvent{},
	)
}
