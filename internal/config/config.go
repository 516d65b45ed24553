// Package config loads application settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment doesn't say otherwise.
const (
	DefaultDatabasePath = "data/codereps.db"
	DefaultDigestHour   = 9
)

// Config holds the application settings.
type Config struct {
	// Path to the sqlite database file
	DatabasePath string
	// Local hour (0-23) at which the daily digest fires
	DigestHour int
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing values fall back to defaults.
func Load() *Config {
	// A missing .env file is fine; env vars still apply.
	godotenv.Load()

	cfg := &Config{
		DatabasePath: DefaultDatabasePath,
		DigestHour:   DefaultDigestHour,
	}

	if path := os.Getenv("CODEREPS_DB"); path != "" {
		cfg.DatabasePath = path
	}
	if hourStr := os.Getenv("CODEREPS_DIGEST_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			cfg.DigestHour = h
		}
	}

	return cfg
}
