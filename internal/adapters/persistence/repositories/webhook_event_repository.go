package repositories

import (
	"context"

	"imc-donations/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates the notification log repository
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

func (r *webhookEventRepository) Create(ctx context.Context, event *models.WebhookEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *webhookEventRepository) ListRecent(ctx context.Context, limit int) ([]*models.WebhookEvent, error) {
	var events []*models.WebhookEvent
	err := r.db.WithContext(ctx).Order("received_at DESC").Order("id DESC").Limit(limit).Find(&events).Error
	return events, err
}
