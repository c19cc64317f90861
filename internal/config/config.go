// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration for the server.
type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Access gate
	JWTSecret string
	TokenTTL  time.Duration

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// AllowNegativeAmounts permits negative income and expense amounts
	// (refunds, corrections). Off by default.
	AllowNegativeAmounts bool
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "./data/finledger.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AllowNegativeAmounts: getEnvBool("ALLOW_NEGATIVE_AMOUNTS", false),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
