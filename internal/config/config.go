package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ledgerkit/internal/logger"
)

type Config struct {
	// Ledger Configuration
	DefaultCurrency        string
	ReminderDays           int
	SummaryCacheTTLSeconds int
	MaxOccurrences         int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DefaultCurrency:        getEnv("LEDGER_CURRENCY", "EUR"),
		ReminderDays:           getEnvInt("LEDGER_REMINDER_DAYS", 3),
		SummaryCacheTTLSeconds: getEnvInt("LEDGER_SUMMARY_CACHE_TTL", 300),
		MaxOccurrences:         getEnvInt("LEDGER_MAX_OCCURRENCES", 52),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:          getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:              getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.ReminderDays < 0 {
		return fmt.Errorf("LEDGER_REMINDER_DAYS must not be negative")
	}
	if c.SummaryCacheTTLSeconds < 1 {
		return fmt.Errorf("LEDGER_SUMMARY_CACHE_TTL must be at least 1 second")
	}
	if c.MaxOccurrences < 1 {
		return fmt.Errorf("LEDGER_MAX_OCCURRENCES must be at least 1")
	}
	return nil
}

// SummaryCacheTTL returns the cache TTL for aggregate reports as a duration
func (c *Config) SummaryCacheTTL() time.Duration {
	return time.Duration(c.SummaryCacheTTLSeconds) * time.Second
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
