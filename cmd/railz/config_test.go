package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/railz/examples/orders"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, orders.DefaultRedisPrefix, cfg.Store.Redis.Prefix)
	assert.Equal(t, orders.ForeignCountryFee, cfg.Pricing.ForeignFee)
	assert.Equal(t, orders.PremiumRebate, cfg.Pricing.Rebate)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeFile(t, "config.yml", `
log:
  level: debug
  format: json
store:
  driver: redis
  redis:
    addr: cache:6379
    prefix: shop
pricing:
  foreign_fee: 25
`)

	cfg, err := LoadConfig(viper.New(), path, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "shop", cfg.Store.Redis.Prefix)
	assert.Equal(t, 25.0, cfg.Pricing.ForeignFee)
	assert.Equal(t, orders.PremiumRebate, cfg.Pricing.Rebate)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yml", "store:\n  driver: redis\n")
	t.Setenv("RAILZ_STORE_DRIVER", "memory")
	t.Setenv("RAILZ_PRICING_REBATE", "500")

	cfg, err := LoadConfig(viper.New(), path, "")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 500.0, cfg.Pricing.Rebate)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "RAILZ_LOG_LEVEL=warn\n")
	t.Cleanup(func() { _ = os.Unsetenv("RAILZ_LOG_LEVEL") })

	cfg, err := LoadConfig(viper.New(), "", path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yml"), "")
		assert.Error(t, err)
	})

	t.Run("Missing Env File", func(t *testing.T) {
		_, err := LoadConfig(viper.New(), "", filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		path := writeFile(t, "config.yml", "store:\n  driver: postgres\n")
		_, err := LoadConfig(viper.New(), path, "")
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("Negative Fee", func(t *testing.T) {
		t.Setenv("RAILZ_PRICING_FOREIGN_FEE", "-1")
		_, err := LoadConfig(viper.New(), "", "")
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LogConfig{Level: "warn", Format: "json"}, &buf)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"service":"railz"`)

	buf.Reset()
	l = newLogger(LogConfig{Level: "bogus", Format: "console", NoColor: true}, &buf)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	l.Info().Msg("console line")
	assert.Contains(t, buf.String(), "console line")
}
