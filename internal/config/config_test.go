package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/negatiview")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15, cfg.JWT.AccessTokenMaxAge)
	assert.Equal(t, 60, cfg.JWT.RefreshTokenMaxAge)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, time.Hour, cfg.JWT.RefreshTTL())
	assert.False(t, cfg.JWT.UseRSA())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADDRESS", ":9000")
	t.Setenv("ACCESS_TOKEN_MAX_AGE", "30")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingKeyMaterial(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/negatiview")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_PartialKeypair(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_PRIVATE_KEY", "cGVtCg==")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_PUBLIC_KEY")
}
