package config

import (
	"fmt"
	"time"

	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/logger"
	"imc-donations/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	admin AdminSeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminSeedConfig) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	logger.Log.Info("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Log.Info("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the bootstrap administrator once. It is skipped
// when any administrator exists or no ADMIN_PASSWORD is configured.
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdministrator).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.admin.Password == "" {
		logger.Log.Warn("⚠️ Skipping admin seed: ADMIN_PASSWORD is not set")
		return nil
	}
	if !password.ValidatePassword(s.admin.Password) {
		return fmt.Errorf("ADMIN_PASSWORD must be %d-%d characters", password.MinLength, password.MaxLength)
	}

	hashedPassword, err := password.Hash(s.admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         s.admin.Name,
		Email:        s.admin.Email,
		PasswordHash: hashedPassword,
		Role:         string(domain.RoleAdministrator),
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	logger.Log.Info("✅ Admin user created", zap.String("email", admin.Email))
	return nil
}
