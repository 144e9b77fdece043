// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBDriver selects the storage backend: "sqlite" (default) or
	// "postgres".
	DBDriver string

	// DBPath is the SQLite database file (sqlite driver only).
	DBPath string

	// PostgresDSN is the connection string (postgres driver only).
	PostgresDSN string

	// AdminPassword is the shared password behind the authorization gate.
	AdminPassword string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenTTL is how long a session stays valid.
	TokenTTL time.Duration

	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers []string

	// KafkaTopic is the topic recalculation events are written to.
	KafkaTopic string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "./data/divvy.db"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "divvy.recalculations"),
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.AdminPassword == "" {
		return nil, errors.New("ADMIN_PASSWORD is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.DBDriver == "postgres" && cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is required with DB_DRIVER=postgres")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
