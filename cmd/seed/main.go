package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/config"
	"github.com/spec-kit/happyfarm/internal/observability"
	"github.com/spec-kit/happyfarm/internal/persistence"
	"github.com/spec-kit/happyfarm/internal/repository"
	"github.com/spec-kit/happyfarm/internal/seed"
)

func main() {
	migrate := flag.Bool("migrate", true, "Apply migrations before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if !pg.Enabled() {
		logger.Fatal("POSTGRES_DSN is required to seed")
	}

	if *migrate {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	res, err := seed.Run(ctx, repository.NewStores(pg.PoolHandle()), cfg.Auth.BcryptCost, logger)
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("users", res.Users), zap.Int("animals", res.Animals))
}
