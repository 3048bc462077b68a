package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/app"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/db"
	"github.com/NastyaGoryachaya/currency-rate-service/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(&cfg.Logger)

	pool, err := db.NewPool(&cfg.Postgres)
	if err != nil {
		log.Error("postgres connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Migrations.Enabled {
		if err := db.Migrate(&cfg.Postgres, cfg.Migrations.Path, log); err != nil {
			log.Error("migrations failed", slog.String("error", err.Error()))
			pool.Close()
			os.Exit(1)
		}
	}

	// context + signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(*cfg, log, pool)
	if err != nil {
		log.Error("app init failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Error("application stopped with error", slog.String("error", err.Error()))
	}

	log.Info("currency-rate-service stopped")
}
