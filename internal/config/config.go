// Package config provides server configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the HTTP server configuration. LLM provider settings live
// in the llm package and are loaded separately.
type Config struct {
	Port   string
	DBPath string
	Env    string
}

// Load reads configuration from environment variables. An empty
// WORDSPARK_DB defers the database location to the XDG default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("WORDSPARK_DB", ""),
		Env:    getEnv("WORDSPARK_ENV", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("WORDSPARK_ENV must be development or production, got %q", c.Env)
	}
	return nil
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
