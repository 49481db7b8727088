package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"StockNewsAlert/internal/collector"
	"StockNewsAlert/internal/config"
	"StockNewsAlert/internal/httpclient"
	"StockNewsAlert/internal/news"
	"StockNewsAlert/internal/notifier"
	"StockNewsAlert/internal/pipeline"
	"StockNewsAlert/internal/recorder"
	"StockNewsAlert/internal/strategy"
)

// configFlags are shared by every subcommand that needs the configuration.
type configFlags struct {
	configPath string
	envFile    string
}

func (c *configFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", defaultConfigPath(), "path to the YAML config file (optional)")
	f.StringVar(&c.envFile, "env-file", ".env", "path to a .env file with credentials (optional)")
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// loadConfig loads and validates the configuration.
func loadConfig(path, envFile string) (*config.Config, error) {
	cfg, err := config.Load(path, envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	client := httpclient.New(cfg.Proxy, cfg.Timeout)
	if cfg.PriceSource.Provider == config.ProviderYahoo {
		return collector.NewYahooFetcher(client)
	}
	return collector.NewAlphaVantageFetcher(cfg.PriceSource.Endpoint, cfg.PriceSource.APIKey, client)
}

// openRecorder falls back to a no-op journal when SQLite is unset or fails to open.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func buildPipeline(cfg *config.Config, dryRun bool, rec recorder.Recorder) *pipeline.Pipeline {
	fetcher := newFetcher(cfg)
	log.Printf("[INFO] price source: %s", fetcher.Name())

	newsClient := news.NewNewsAPIClient(cfg.News.Endpoint, cfg.News.APIKey, httpclient.New(cfg.Proxy, cfg.Timeout))

	var n notifier.Notifier
	if dryRun {
		n = notifier.NewLogNotifier()
	} else {
		n = notifier.NewEmailNotifier(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.From, cfg.Email.To, cfg.Email.Password, cfg.Timeout)
	}

	return pipeline.New(
		cfg.Alert.Ticker,
		cfg.Alert.Issuer,
		collector.NewCollector(fetcher, cfg.Alert.Ticker),
		strategy.NewGate(cfg.Alert.ThresholdPercent),
		news.NewFetcher(newsClient),
		n,
		rec,
	)
}
