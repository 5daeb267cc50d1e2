package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API          APIConfig          `yaml:"api"`
	AlphaVantage AlphaVantageConfig `yaml:"alphavantage"`
	Gateway      GatewayConfig      `yaml:"gateway"`
	Refresh      RefreshConfig      `yaml:"refresh"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Web          WebConfig          `yaml:"web"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// APIConfig points at the txm backend and the license service.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	LicenseURL string `yaml:"license_url"`
}

type AlphaVantageConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GatewayConfig struct {
	// Mode is "simulated" or "alpaca".
	Mode      string `yaml:"mode"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
}

type RefreshConfig struct {
	Interval string `yaml:"interval"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://txm.fullynerfed.workers.dev"
	}
	if cfg.API.LicenseURL == "" {
		cfg.API.LicenseURL = "https://license-backend.fullynerfed.workers.dev"
	}
	if cfg.AlphaVantage.APIKey == "" {
		cfg.AlphaVantage.APIKey = "demo"
	}
	if cfg.AlphaVantage.BaseURL == "" {
		cfg.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if cfg.AlphaVantage.TimeoutSeconds == 0 {
		cfg.AlphaVantage.TimeoutSeconds = 30
	}
	if cfg.Gateway.Mode == "" {
		cfg.Gateway.Mode = "simulated"
	}
	if cfg.Refresh.Interval == "" {
		cfg.Refresh.Interval = "30s"
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Refresh.Interval); err != nil {
		return fmt.Errorf("invalid refresh.interval %q: %w", c.Refresh.Interval, err)
	}
	switch c.Gateway.Mode {
	case "simulated":
	case "alpaca":
		if c.Gateway.APIKey == "" || c.Gateway.APISecret == "" {
			return fmt.Errorf("gateway.api_key and gateway.api_secret are required in alpaca mode")
		}
	default:
		return fmt.Errorf("unknown gateway.mode %q", c.Gateway.Mode)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

func (c *Config) IsSimulated() bool {
	return c.Gateway.Mode == "simulated"
}

func (c *Config) RefreshInterval() time.Duration {
	d, _ := time.ParseDuration(c.Refresh.Interval)
	return d
}

func (c *Config) AlphaVantageTimeout() time.Duration {
	return time.Duration(c.AlphaVantage.TimeoutSeconds) * time.Second
}
