// Package config содержит логику чтения конфигурации сервиса бронирования.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса бронирования.
type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS"`
	DatabaseURI          string        `env:"DATABASE_URI"`
	FileStoragePath      string        `env:"FILE_STORAGE_PATH"`
	PaymentSystemAddress string        `env:"PAYMENT_SYSTEM_ADDRESS"`
	PaymentDelay         time.Duration `env:"PAYMENT_DELAY"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения переменных окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envFileStoragePath := cfg.FileStoragePath
	envPaymentAddress := cfg.PaymentSystemAddress
	envPaymentDelay := cfg.PaymentDelay

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.FileStoragePath, "f", "lpg_store.json", "file storage path (used when no database URI is set)")
	flag.StringVar(&cfg.PaymentSystemAddress, "p", "", "payment system address (stub gateway when empty)")
	flag.DurationVar(&cfg.PaymentDelay, "t", 2*time.Second, "stub payment confirmation delay")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envFileStoragePath != "" {
		cfg.FileStoragePath = envFileStoragePath
	}
	if envPaymentAddress != "" {
		cfg.PaymentSystemAddress = envPaymentAddress
	}
	if envPaymentDelay != 0 {
		cfg.PaymentDelay = envPaymentDelay
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
