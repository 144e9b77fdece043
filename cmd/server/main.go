package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jperaza/divvy/internal/auth"
	"github.com/jperaza/divvy/internal/config"
	"github.com/jperaza/divvy/internal/events"
	"github.com/jperaza/divvy/internal/events/kafka"
	"github.com/jperaza/divvy/internal/server"
	"github.com/jperaza/divvy/internal/service"
	"github.com/jperaza/divvy/internal/storage"
	"github.com/jperaza/divvy/internal/storage/postgres"
	"github.com/jperaza/divvy/internal/storage/sqlite"
	"github.com/jperaza/divvy/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		slog.Info("Kafka publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	svc, err := service.New(context.Background(), store, publisher)
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}

	gate, err := auth.NewGate(cfg.AdminPassword, auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL))
	if err != nil {
		slog.Error("Failed to initialize authorization gate", "error", err)
		os.Exit(1)
	}

	handler := server.New(svc, gate).Routes()

	// h2c allows HTTP/2 without TLS, typically behind a reverse proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DBDriver == "postgres" {
		return postgres.New(cfg.PostgresDSN)
	}
	return sqlite.New(cfg.DBPath)
}
