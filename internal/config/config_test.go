package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "shop-events", cfg.KafkaTopic)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiry)
	assert.True(t, cfg.Currencies.Supports("CAD"))
	assert.True(t, cfg.Currencies.Supports("USD"))
	assert.Zero(t, cfg.SalesforceTTLSeconds)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}

func TestLoad_UnknownStorage(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORAGE", "dynamo")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE")
}

func TestLoad_CustomCurrencies(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SUPPORTED_CURRENCIES", "jpy,usd")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.Currencies.Supports("JPY"))
	assert.True(t, cfg.Currencies.Supports("USD"))
	assert.False(t, cfg.Currencies.Supports("CAD"))
}

func TestLoad_InvalidCurrency(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SUPPORTED_CURRENCIES", "USD,NOPE")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPPORTED_CURRENCIES")
}

func TestLoad_MultipleBrokers(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "fifteen minutes")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_EXPIRY")
}
