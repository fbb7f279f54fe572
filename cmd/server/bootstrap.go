package main

import (
	"fmt"

	"imc-donations/internal/adapters/gateway/mercadopago"
	"imc-donations/internal/adapters/http/routes"
	"imc-donations/internal/adapters/mailer"
	"imc-donations/internal/adapters/persistence/models"
	"imc-donations/internal/config"
	"imc-donations/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads configuration, starts the logger and opens the database
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger.Initialize(cfg.AppMode)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// migrate creates or updates every table
func migrate(db *gorm.DB) error {
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Log.Info("✅ Database migration completed")
	return nil
}

// buildDependencies wires the provider client and the mailer into the services
func buildDependencies(cfg *config.Config, db *gorm.DB) (*routes.Dependencies, error) {
	gateway, err := mercadopago.NewClient(cfg.MercadoPago.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago client: %w", err)
	}

	mail := mailer.New(cfg.Mail.SendGridAPIKey, cfg.Mail.FromAddress, cfg.Mail.FromName)
	if cfg.Mail.SendGridAPIKey == "" {
		logger.Log.Warn("⚠️ SENDGRID_API_KEY not set, thank-you emails will only be logged")
	}

	logger.Log.Debug("dependencies ready", zap.String("webhook_url", cfg.MercadoPago.WebhookURL))
	return routes.NewDependencies(db, cfg, gateway, mail), nil
}
