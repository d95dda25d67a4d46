// Command cleanup-carts removes carts that have not been touched for longer
// than the configured retention period. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Requires DATABASE_DSN. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/storefront-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storefront-backend/internal/adapter/postgres/cartrepo"
	"github.com/heartmarshall/storefront-backend/internal/app"
	"github.com/heartmarshall/storefront-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Database.Enabled() {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := cartrepo.New(pool, postgres.NewTxManager(pool))

	threshold := time.Now().AddDate(0, 0, -cfg.Session.CartMaxAgeDays)

	deleted, err := repo.DeleteStale(ctx, threshold)
	if err != nil {
		logger.Error("cart cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("cart cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
