package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Execution service (market data + order placement)
	ExchangeAPIURL  string
	ExchangeTimeout time.Duration

	// Trade ledger persistence
	LedgerStorageMode string // "file" or "postgres"
	LedgerDir         string
	PostgresHost      string
	PostgresPort      string
	PostgresUser      string
	PostgresPass      string
	PostgresDB        string
	PostgresSSL       string

	// Market data caching
	MarketsCacheTTL time.Duration

	// Countdown refresh
	CountdownTick time.Duration

	// Submission circuit breaker
	BreakerFailureThreshold int
	BreakerCooldown         time.Duration
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Execution service defaults
		ExchangeAPIURL:  getEnvOrDefault("EXCHANGE_API_URL", "http://localhost:8000"),
		ExchangeTimeout: getDurationOrDefault("EXCHANGE_TIMEOUT", 30*time.Second),

		// Ledger defaults
		LedgerStorageMode: getEnvOrDefault("LEDGER_STORAGE_MODE", "file"),
		LedgerDir:         getEnvOrDefault("LEDGER_DIR", defaultLedgerDir()),
		PostgresHost:      getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser:      getEnvOrDefault("POSTGRES_USER", "scalar"),
		PostgresPass:      getEnvOrDefault("POSTGRES_PASSWORD", "scalar123"),
		PostgresDB:        getEnvOrDefault("POSTGRES_DB", "scalar_terminal"),
		PostgresSSL:       getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		// Market data defaults
		MarketsCacheTTL: getDurationOrDefault("MARKETS_CACHE_TTL", 15*time.Second),

		// Countdown defaults
		CountdownTick: getDurationOrDefault("COUNTDOWN_TICK", 1*time.Second),

		// Breaker defaults
		BreakerFailureThreshold: getIntOrDefault("BREAKER_FAILURE_THRESHOLD", 3),
		BreakerCooldown:         getDurationOrDefault("BREAKER_COOLDOWN", 30*time.Second),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.ExchangeAPIURL == "" {
		return fmt.Errorf("EXCHANGE_API_URL cannot be empty")
	}

	if c.LedgerStorageMode != "file" && c.LedgerStorageMode != "postgres" {
		return fmt.Errorf("LEDGER_STORAGE_MODE must be 'file' or 'postgres', got %q", c.LedgerStorageMode)
	}

	if c.CountdownTick <= 0 {
		return fmt.Errorf("COUNTDOWN_TICK must be positive, got %s", c.CountdownTick)
	}

	if c.BreakerFailureThreshold <= 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive, got %d", c.BreakerFailureThreshold)
	}

	return nil
}

func defaultLedgerDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".scalar-terminal")
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
