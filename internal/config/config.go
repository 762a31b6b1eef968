// Package config reads server settings from the environment.
package config

import (
	"os"
	"time"
)

type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	Seed      bool
	LogLevel  string
}

// Load builds a Config from environment variables, falling back to
// development defaults. godotenv is expected to have populated the
// environment already.
func Load() Config {
	cfg := Config{
		Addr:      getenv("TASKBOARD_ADDR", ":8080"),
		DBPath:    getenv("TASKBOARD_DB", "./taskboard.db"),
		JWTSecret: getenv("TASKBOARD_JWT_SECRET", "your-secret-key"),
		TokenTTL:  24 * time.Hour,
		Seed:      getenv("TASKBOARD_SEED", "true") != "false",
		LogLevel:  getenv("TASKBOARD_LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("TASKBOARD_TOKEN_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
