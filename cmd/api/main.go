package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/happyfarm/internal/api/http"
	"github.com/spec-kit/happyfarm/internal/api/http/handlers"
	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/config"
	"github.com/spec-kit/happyfarm/internal/events"
	"github.com/spec-kit/happyfarm/internal/observability"
	"github.com/spec-kit/happyfarm/internal/persistence"
	"github.com/spec-kit/happyfarm/internal/repository"
	"github.com/spec-kit/happyfarm/internal/service"
	"github.com/spec-kit/happyfarm/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var revocation auth.RevocationList
	if redis.Enabled() {
		revocation = auth.NewRedisRevocationList(redis.Client)
	} else {
		logger.Warn("REDIS_ADDR not provided; token revocation is per-process")
		revocation = auth.NewMemoryRevocationList()
	}

	stores := repository.NewStores(pg.PoolHandle())
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	notifier := worker.StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger), logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   stores.Users,
		FarmRepo:   stores.Farms,
		Revocation: revocation,
		Logger:     logger,
	})
	animalService := service.NewAnimalService(service.AnimalDependencies{
		FarmRepo:   stores.Farms,
		AnimalRepo: stores.Animals,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	farmService := service.NewFarmService(stores.Farms, stores.Animals, nil)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), stores.Users, revocation, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Dependency{
		"postgres": pg,
		"redis":    redis,
	})

	loginLimiter := auth.NewLoginLimiter(cfg.Auth.LoginAttemptsPerMin, cfg.Auth.LoginBurst)
	loginLimiter.StartCleanup(ctx, time.Minute)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		APIPrefix:      cfg.App.APIPrefix,
		Health:         healthHandler,
		Users:          handlers.NewUsersHandler(authService),
		Animals:        handlers.NewAnimalsHandler(animalService),
		Farm:           handlers.NewFarmHandler(farmService),
		AuthMiddleware: authMiddleware,
		LoginLimiter:   loginLimiter,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	cancel()
	notifier.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
