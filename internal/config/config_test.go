package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.True(t, decimal.NewFromInt(100000).Equal(cfg.Donation.MaxAmount))
	assert.Equal(t, "@every 15m", cfg.Reconcile.Schedule)
	assert.Equal(t, 72*time.Hour, cfg.Reconcile.MaxAge)
	assert.Equal(t, 5*time.Minute, cfg.Reconcile.MinAge)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
	assert.Equal(t, "http://localhost:3000/doacao/sucesso", cfg.SuccessURL())
	assert.Equal(t, "http://localhost:3000/doacao/falha", cfg.FailureURL())
}

func TestFromViper_PostgresDefaultPort(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"DB_DRIVER": "Postgres"}))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestFromViper_Rejects(t *testing.T) {
	cases := map[string]map[string]any{
		"bad mode":         {"APP_MODE": "staging"},
		"bad driver":       {"DB_DRIVER": "oracle"},
		"bad max amount":   {"DONATION_MAX_AMOUNT": "-1"},
		"bad expiry":       {"JWT_EXPIRY_HOURS": 0},
		"prod default jwt": {"APP_MODE": "prod"},
		"prod short jwt":   {"APP_MODE": "prod", "JWT_SECRET": "short"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromViper(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestFromViper_Prod(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"APP_MODE":     "prod",
		"JWT_SECRET":   "0123456789abcdef0123456789abcdef",
		"FRONTEND_URL": "https://doe.institutomariaclaro.org/",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "https://doe.institutomariaclaro.org", cfg.GetAllowedOrigins())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:test.db")
	t.Setenv("RECONCILE_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Empty(t, cfg.Reconcile.Schedule)
	assert.Same(t, cfg, AppConfig)
}
