package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.InDelta(t, 0.10, cfg.Lab.TaxRate, 0.0001)
	assert.Empty(t, cfg.Redis.Addr())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("LIMS_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnvOrDefault("LIMS_TEST_KEY", "x"))
	assert.Equal(t, "x", GetEnvOrDefault("LIMS_MISSING_KEY", "x"))
}
