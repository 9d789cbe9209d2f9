package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.LogStoreDriver)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL)
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.ParkingUnitRate))
	assert.Equal(t, "TL", cfg.ParkingCurrency)
	assert.Equal(t, "dark", cfg.DefaultTheme)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("LOG_STORE_DRIVER", "SQLite")
	v.Set("PARKING_UNIT_RATE", "12.5")
	v.Set("JWT_EXPIRY_DURATION", "15m")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	v.Set("DEFAULT_LANGUAGE", "tr")

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverSQLite, cfg.LogStoreDriver)
	assert.Equal(t, "12.5", cfg.ParkingUnitRate.String())
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "tr", cfg.DefaultLanguage)
}

func TestLoad_UnitRateScale(t *testing.T) {
	for rate, want := range map[string]string{
		"12.50": "12.5",
		"0.05":  "0.05",
		"0.125": "10",
		"-3":    "10",
		"0":     "10",
	} {
		v := viper.New()
		v.Set("PARKING_UNIT_RATE", rate)

		cfg, err := load(v)
		require.NoError(t, err, rate)
		assert.True(t, decimal.RequireFromString(want).Equal(cfg.ParkingUnitRate), rate)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	v := viper.New()
	v.Set("LOG_STORE_DRIVER", "redis")
	v.Set("PARKING_UNIT_RATE", "ten")
	v.Set("PASSWORD_RESET_TTL", "soon")
	v.Set("REFRESH_TOKEN_EXPIRY_DURATION", "-1h")
	v.Set("DEFAULT_THEME", "blue")

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.LogStoreDriver)
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.ParkingUnitRate))
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, "dark", cfg.DefaultTheme)
}
