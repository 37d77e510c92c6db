// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the server and the CLI.
type Config struct {
	// Addr is the HTTP listen address. Loopback by default: one local user.
	Addr string

	// StorageDSN selects the storage medium; see backend.Open.
	StorageDSN string

	// StaticPath is the directory holding the browser frontend's build.
	// The frontend is not part of this module; without an index.html there
	// the server runs API-only.
	StaticPath string

	// LogLevel is debug, info, warn or error.
	LogLevel string
}

// Load reads .env if present, then the environment.
func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found

	return &Config{
		Addr:       getEnv("ADDR", "127.0.0.1:8080"),
		StorageDSN: getEnv("STORAGE_DSN", "./data/groupbuy.db"),
		StaticPath: getEnv("STATIC_PATH", "./static"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
