package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
	fyersAppIDENV     = "FYERS_APP_ID"
	fyersTokenENV     = "FYERS_ACCESS_TOKEN"

	ModeLive  = "live"
	ModePaper = "paper"
)

// Config ...
type Config struct {
	Service struct {
		Name       string `yaml:"name"`
		HealthAddr string `yaml:"health_addr"`
	} `yaml:"service"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	// пустой DSN: журнал ордеров выключен
	DB string `yaml:"db_dsn"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`

	Fyers struct {
		Mode        string        `yaml:"mode"` // live | paper
		AppID       string        `yaml:"app_id"`
		AccessToken string        `yaml:"access_token"`
		BaseURL     string        `yaml:"base_url"`
		DataURL     string        `yaml:"data_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"fyers"`

	Trading struct {
		Symbol       string `yaml:"symbol"`
		LotSize      int64  `yaml:"lot_size"` // базовый размер ордера, > 0
		ProductType  string `yaml:"product_type"`
		OrderTag     string `yaml:"order_tag"`
		OfflineOrder bool   `yaml:"offline_order"`
	} `yaml:"trading"`

	Strategy struct {
		EMAShort int `yaml:"ema_short"`
		EMALong  int `yaml:"ema_long"`
	} `yaml:"strategy"`
}

// NewConfig читает configs/$CONFIG_FILE (по умолчанию values_local.yaml).
func NewConfig() (*Config, error) {
	dir := getenvDefault(configDirENV, "configs")
	name := getenvDefault(configFilePathENV, "values_local.yaml")
	return Load(filepath.Join(dir, name))
}

// Load: дефолты, затем YAML-файл, затем ENV, затем валидация.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	config := defaults()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func defaults() *Config {
	c := &Config{}
	c.Service.Name = "live_trader"
	c.Service.HealthAddr = ":8080"

	c.Tracing.Host = "localhost"
	c.Tracing.Port = 6831

	c.Fyers.Mode = ModePaper
	c.Fyers.BaseURL = "https://api-t1.fyers.in"
	c.Fyers.DataURL = "wss://socket.fyers.in/data-relay"
	c.Fyers.Timeout = 10 * time.Second

	c.Trading.Symbol = "NSE:RELIANCE-EQ"
	c.Trading.LotSize = 1
	c.Trading.ProductType = "MARGIN"
	c.Trading.OrderTag = "SB_VOL_FYERS_API"

	c.Strategy.EMAShort = 9
	c.Strategy.EMALong = 21
	return c
}

func (c *Config) applyEnv() {
	if token := os.Getenv(tokenTelegramENV); token != "" {
		c.Telegram.Token = token
	}
	if v := os.Getenv(chatTelegramENV); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		c.DB = dsn
	}
	if v := os.Getenv(fyersAppIDENV); v != "" {
		c.Fyers.AppID = v
	}
	if v := os.Getenv(fyersTokenENV); v != "" {
		c.Fyers.AccessToken = v
	}

	c.Fyers.Mode = strings.ToLower(getenvDefault("FYERS_MODE", c.Fyers.Mode))
	c.Fyers.Timeout = durationFromEnv("FYERS_TIMEOUT", c.Fyers.Timeout.String())
	c.Service.HealthAddr = getenvDefault("HEALTH_ADDR", c.Service.HealthAddr)
	c.Trading.Symbol = getenvDefault("SYMBOL", c.Trading.Symbol)
	c.Trading.LotSize = int64(intFromEnv("LOT_SIZE", int(c.Trading.LotSize)))
	c.Tracing.Enabled = boolFromEnv("JAEGER_ENABLED", c.Tracing.Enabled)
	c.Strategy.EMAShort = intFromEnv("EMA_SHORT", c.Strategy.EMAShort)
	c.Strategy.EMALong = intFromEnv("EMA_LONG", c.Strategy.EMALong)
}

func (c *Config) Validate() error {
	if c.Trading.LotSize <= 0 {
		return fmt.Errorf("trading.lot_size must be > 0, got %d", c.Trading.LotSize)
	}
	if strings.TrimSpace(c.Trading.Symbol) == "" {
		return fmt.Errorf("trading.symbol is required")
	}
	switch c.Fyers.Mode {
	case ModeLive:
		if c.Fyers.AppID == "" || c.Fyers.AccessToken == "" {
			return fmt.Errorf("fyers.app_id and fyers.access_token are required in live mode")
		}
	case ModePaper:
	default:
		return fmt.Errorf("fyers.mode must be %q or %q, got %q", ModeLive, ModePaper, c.Fyers.Mode)
	}
	if c.Strategy.EMAShort >= c.Strategy.EMALong {
		return fmt.Errorf("EMA_SHORT must be < EMA_LONG")
	}
	return nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
