package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable in dev mode
const DefaultJWTSecret = "default_secret"

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	FrontendURL string
	Database    DatabaseConfig
	JWT         JWTConfig
	MercadoPago MercadoPagoConfig
	Mail        MailConfig
	Donation    DonationConfig
	Reconcile   ReconcileConfig
	Admin       AdminSeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // mysql, postgres or sqlite
	DSN      string // used verbatim when set
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// MercadoPagoConfig holds the payment provider credentials
type MercadoPagoConfig struct {
	AccessToken   string
	WebhookURL    string
	WebhookSecret string
}

// MailConfig holds transactional email settings
type MailConfig struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
}

// DonationConfig bounds donation intents
type DonationConfig struct {
	MaxAmount decimal.Decimal
}

// ReconcileConfig drives the pending-payment sweeper
type ReconcileConfig struct {
	Schedule  string // cron spec, empty disables the job
	MaxAge    time.Duration
	MinAge    time.Duration
	BatchSize int
}

// AdminSeedConfig is the bootstrap administrator
type AdminSeedConfig struct {
	Name     string
	Email    string
	Password string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	// RECONCILE_CRON= disables the sweeper
	v.AllowEmptyEnv(true)
	setDefaults(v)

	config, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_MODE", "dev")
	v.SetDefault("PORT", "3000")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_NAME", "imc_donations")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)

	v.SetDefault("MAIL_FROM_ADDRESS", "contato@institutomariaclaro.org")
	v.SetDefault("MAIL_FROM_NAME", "Instituto Maria Claro")

	v.SetDefault("DONATION_MAX_AMOUNT", "100000")

	v.SetDefault("RECONCILE_CRON", "@every 15m")
	v.SetDefault("RECONCILE_MAX_AGE_HOURS", 72)
	v.SetDefault("RECONCILE_MIN_AGE_MINUTES", 5)
	v.SetDefault("RECONCILE_BATCH_SIZE", 50)

	v.SetDefault("ADMIN_NAME", "Admin Principal")
	v.SetDefault("ADMIN_EMAIL", "admin@gmail.com")
}

func fromViper(v *viper.Viper) (*Config, error) {
	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(v.GetString("APP_MODE"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER")))
	defaultPort := map[string]string{"mysql": "3306", "postgres": "5432"}[driver]
	if driver != "mysql" && driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be mysql, postgres or sqlite)", driver)
	}
	dbPort := v.GetString("DB_PORT")
	if dbPort == "" {
		dbPort = defaultPort
	}

	maxAmount, err := decimal.NewFromString(v.GetString("DONATION_MAX_AMOUNT"))
	if err != nil || !maxAmount.IsPositive() {
		return nil, fmt.Errorf("invalid DONATION_MAX_AMOUNT: '%s'", v.GetString("DONATION_MAX_AMOUNT"))
	}

	expiryHours := v.GetInt("JWT_EXPIRY_HOURS")
	if expiryHours < 1 {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %d", expiryHours)
	}

	config := &Config{
		AppMode:     appMode,
		Port:        v.GetString("PORT"),
		FrontendURL: strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		Database: DatabaseConfig{
			Driver:   driver,
			DSN:      v.GetString("DB_DSN"),
			Host:     v.GetString("DB_HOST"),
			Port:     dbPort,
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: time.Duration(expiryHours) * time.Hour,
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:   v.GetString("MP_ACCESS_TOKEN"),
			WebhookURL:    v.GetString("MP_WEBHOOK_URL"),
			WebhookSecret: v.GetString("MP_WEBHOOK_SECRET"),
		},
		Mail: MailConfig{
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromAddress:    v.GetString("MAIL_FROM_ADDRESS"),
			FromName:       v.GetString("MAIL_FROM_NAME"),
		},
		Donation: DonationConfig{
			MaxAmount: maxAmount,
		},
		Reconcile: ReconcileConfig{
			Schedule:  strings.TrimSpace(v.GetString("RECONCILE_CRON")),
			MaxAge:    time.Duration(v.GetInt("RECONCILE_MAX_AGE_HOURS")) * time.Hour,
			MinAge:    time.Duration(v.GetInt("RECONCILE_MIN_AGE_MINUTES")) * time.Minute,
			BatchSize: v.GetInt("RECONCILE_BATCH_SIZE"),
		},
		Admin: AdminSeedConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.IsProd() && (config.JWT.Secret == DefaultJWTSecret || len(config.JWT.Secret) < 32) {
		return nil, fmt.Errorf("JWT_SECRET must be set to at least 32 characters in prod mode")
	}

	return config, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.IsDev() {
		return "*"
	}
	return c.FrontendURL
}

// SuccessURL is the checkout return page for approved payments
func (c *Config) SuccessURL() string { return c.FrontendURL + "/doacao/sucesso" }

func (c *Config) FailureURL() string { return c.FrontendURL + "/doacao/falha" }

// PendingURL lands on the success page; the webhook settles the payment later
func (c *Config) PendingURL() string { return c.FrontendURL + "/doacao/sucesso" }
