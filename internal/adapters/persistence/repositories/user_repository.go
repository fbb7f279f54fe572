package repositories

import (
	"context"
	"strconv"
	"strings"

	"imc-donations/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email. Emails are stored lower-cased.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes every column, so nil pointers clear optional fields
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete soft deletes a user. Payments keep their donor_id.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// List lists users matching filter ordered by name
func (r *userRepository) List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		if id, err := strconv.ParseUint(search, 10, 64); err == nil {
			query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR id = ?", like, like, id)
		} else {
			query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.PersonType != "" {
		query = query.Where("person_type = ?", filter.PersonType)
	}

	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Exists reports whether a non-deleted user has this id
func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email is taken by anyone other than excludeID.
// Soft-deleted rows count because the unique index still holds them.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).
		Where("email = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByDocument checks if a tax id is taken by anyone other than excludeID
func (r *userRepository) ExistsByDocument(ctx context.Context, document string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).
		Where("document = ? AND id <> ?", document, excludeID).
		Count(&count).Error
	return count > 0, err
}

type groupCount struct {
	GroupKey *string
	Total    int64
}

// Stats counts users by role and by person type
func (r *userRepository) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{
		ByRole:       map[string]int64{},
		ByPersonType: map[string]int64{},
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var byRole []groupCount
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role AS group_key, COUNT(*) AS total").Group("role").Scan(&byRole).Error; err != nil {
		return nil, err
	}
	for _, g := range byRole {
		if g.GroupKey != nil {
			stats.ByRole[*g.GroupKey] = g.Total
		}
	}

	var byType []groupCount
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("person_type AS group_key, COUNT(*) AS total").Group("person_type").Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, g := range byType {
		key := "Unspecified"
		if g.GroupKey != nil {
			key = *g.GroupKey
		}
		stats.ByPersonType[key] = g.Total
	}

	return stats, nil
}
