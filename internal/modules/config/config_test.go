package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
fyers:
  mode: paper
  timeout: 3s
trading:
  symbol: NSE:SBIN-EQ
  lot_size: 25
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "NSE:SBIN-EQ", cfg.Trading.Symbol)
	assert.EqualValues(t, 25, cfg.Trading.LotSize)
	assert.Equal(t, 3*time.Second, cfg.Fyers.Timeout)
	// не указано в файле: остаётся дефолт
	assert.Equal(t, "MARGIN", cfg.Trading.ProductType)
	assert.Equal(t, "SB_VOL_FYERS_API", cfg.Trading.OrderTag)
	assert.Equal(t, ":8080", cfg.Service.HealthAddr)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "trading:\n  lot_size: 5\n")
	t.Setenv("LOT_SIZE", "40")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/trader")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("FYERS_MODE", "LIVE")
	t.Setenv("FYERS_APP_ID", "APP-100")
	t.Setenv("FYERS_ACCESS_TOKEN", "tok")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, 40, cfg.Trading.LotSize)
	assert.Equal(t, "postgres://u:p@db:5432/trader", cfg.DB)
	assert.EqualValues(t, 12345, cfg.Telegram.ChatID)
	assert.Equal(t, ModeLive, cfg.Fyers.Mode)
	assert.Equal(t, "APP-100", cfg.Fyers.AppID)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero lot size", "trading:\n  lot_size: 0\n"},
		{"negative lot size", "trading:\n  lot_size: -3\n"},
		{"unknown mode", "fyers:\n  mode: sandbox\n"},
		{"live without creds", "fyers:\n  mode: live\n"},
		{"ema order", "strategy:\n  ema_short: 30\n  ema_long: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewConfigReadsConfigDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "values_test.yaml"), []byte("trading:\n  lot_size: 7\n"), 0o600))
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("CONFIG_FILE", "values_test.yaml")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.EqualValues(t, 7, cfg.Trading.LotSize)
}
