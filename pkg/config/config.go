// Package config loads application configuration from environment
// variables, with .env support for local development.
package config

import (
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration.
type Config struct {
	Log           LogConfig
	Parser        ParserConfig
	Observability ObservabilityConfig
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

type ParserConfig struct {
	// LegacyTail selects the strict two-state tail recoverer for
	// compatibility with older exports.
	LegacyTail bool
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Parser: ParserConfig{
			LegacyTail: getEnvAsBool("PARSER_LEGACY_TAIL", false),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
