package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvTest)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("EMAIL_FROM", "kitchen@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "kitchen@example.com", cfg.AdminEmail)
	assert.False(t, cfg.IsProduction())
}

func TestLoadBuildsDSNFromParts(t *testing.T) {
	t.Setenv("APP_ENV", EnvTest)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "menu")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=6543 user=chef password=secret dbname=menu sslmode=require", cfg.DatabaseURL)
}

func TestProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "a-long-production-session-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoginRateLimitNeedsPositiveWindow(t *testing.T) {
	t.Setenv("APP_ENV", EnvTest)
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOGIN_RATE_LIMIT", "10")

	for _, window := range []string{"0", "-5"} {
		t.Setenv("LOGIN_RATE_WINDOW_MINUTES", window)
		_, err := Load()
		assert.ErrorContains(t, err, "LOGIN_RATE_WINDOW_MINUTES", "window %s", window)
	}

	t.Setenv("LOGIN_RATE_WINDOW_MINUTES", "15")
	t.Setenv("LOGIN_RATE_LIMIT", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "LOGIN_RATE_LIMIT")

	t.Setenv("LOGIN_RATE_LIMIT", "10")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.LoginRateWindow)

	// Without Redis the limiter is off and the window is not used.
	t.Setenv("REDIS_URL", "")
	t.Setenv("LOGIN_RATE_WINDOW_MINUTES", "0")
	_, err = Load()
	assert.NoError(t, err)
}
