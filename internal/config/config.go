package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported price providers.
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderYahoo        = "yahoo"
)

// Config holds all application configuration. It is built once by Load and
// only read afterwards.
type Config struct {
	Alert struct {
		Ticker           string  `yaml:"ticker"`
		Issuer           string  `yaml:"issuer"`
		ThresholdPercent float64 `yaml:"threshold_percent"`
	} `yaml:"alert"`
	PriceSource struct {
		Provider string `yaml:"provider"`
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"price_source"`
	News struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"news"`
	Email struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		From     string `yaml:"from"`
		To       string `yaml:"to"`
		Password string `yaml:"password"`
	} `yaml:"email"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Timeout time.Duration `yaml:"timeout"`
	Proxy   string        `yaml:"proxy"`
}

// Load reads config from a YAML file, loads a .env file into the process
// environment, then applies environment variable overrides and defaults.
// Both files are optional.
func Load(path, envFile string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// godotenv never overrides variables already set in the environment.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ALERT_TICKER"); v != "" {
		cfg.Alert.Ticker = v
	}
	if v := os.Getenv("ALERT_ISSUER"); v != "" {
		cfg.Alert.Issuer = v
	}
	if v := os.Getenv("ALERT_THRESHOLD_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alert.ThresholdPercent = f
		} else {
			log.Printf("[WARN] ignoring ALERT_THRESHOLD_PERCENT=%q: not a number", v)
		}
	}
	if v := os.Getenv("PRICE_PROVIDER"); v != "" {
		cfg.PriceSource.Provider = v
	}
	if v := os.Getenv("STOCK_API_KEY"); v != "" {
		cfg.PriceSource.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("MY_EMAIL"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("TO_EMAIL"); v != "" {
		cfg.Email.To = v
	}
	if v := os.Getenv("MY_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = p
		} else {
			log.Printf("[WARN] ignoring SMTP_PORT=%q: not an integer", v)
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Alert.Ticker == "" {
		cfg.Alert.Ticker = "TSLA"
	}
	if cfg.Alert.Issuer == "" {
		cfg.Alert.Issuer = "Tesla Inc"
	}
	if cfg.Alert.ThresholdPercent == 0 {
		cfg.Alert.ThresholdPercent = 1.0
	}
	if cfg.PriceSource.Provider == "" {
		cfg.PriceSource.Provider = ProviderAlphaVantage
	}
	if cfg.PriceSource.Endpoint == "" && cfg.PriceSource.Provider == ProviderAlphaVantage {
		cfg.PriceSource.Endpoint = "https://www.alphavantage.co/query"
	}
	if cfg.News.Endpoint == "" {
		cfg.News.Endpoint = "https://newsapi.org/v2/everything"
	}
	if cfg.Email.SMTPHost == "" {
		cfg.Email.SMTPHost = "smtp.gmail.com"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
}

// Validate checks the pipeline parameters. Credentials are deliberately left
// alone: a missing key or password shows up as a request or login failure.
func (c *Config) Validate() error {
	if c.Alert.Ticker == "" {
		return fmt.Errorf("alert.ticker is required")
	}
	if c.Alert.Issuer == "" {
		return fmt.Errorf("alert.issuer is required")
	}
	if c.Alert.ThresholdPercent < 0 {
		return fmt.Errorf("alert.threshold_percent must not be negative")
	}
	switch c.PriceSource.Provider {
	case ProviderAlphaVantage, ProviderYahoo:
	default:
		return fmt.Errorf("price_source.provider %q is not supported", c.PriceSource.Provider)
	}
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("email.smtp_port %d is out of range", c.Email.SMTPPort)
	}
	return nil
}
