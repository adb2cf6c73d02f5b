package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Race catalog configuration
	CatalogBaseURL string
	CatalogTimeout time.Duration

	// Wallet configuration
	StartingBalance decimal.Decimal

	// Settlement configuration
	SettlementInterval time.Duration

	// Metrics configuration
	MetricsPort string

	// Environment: "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CatalogBaseURL: os.Getenv("CATALOG_BASE_URL"),

		// Defaults
		CatalogTimeout:     5 * time.Second,
		StartingBalance:    decimal.NewFromInt(100),
		SettlementInterval: time.Minute,
		MetricsPort:        "9090",

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if timeout := os.Getenv("CATALOG_TIMEOUT"); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil {
			config.CatalogTimeout = parsed
		}
	}
	if interval := os.Getenv("SETTLEMENT_INTERVAL"); interval != "" {
		if parsed, err := time.ParseDuration(interval); err == nil {
			config.SettlementInterval = parsed
		}
	}
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := decimal.NewFromString(balance); err == nil {
			config.StartingBalance = parsed
		}
	}
	if port := os.Getenv("METRICS_PORT"); port != "" {
		config.MetricsPort = port
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.CatalogBaseURL == "" {
			return nil, fmt.Errorf("CATALOG_BASE_URL is required")
		}
	}

	return config, nil
}
