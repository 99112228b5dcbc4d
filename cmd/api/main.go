package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/asset-service/internal/api/http"
	"github.com/spec-kit/asset-service/internal/api/http/handlers"
	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/observability"
	"github.com/spec-kit/asset-service/internal/persistence"
	"github.com/spec-kit/asset-service/internal/repository"
	"github.com/spec-kit/asset-service/internal/service"
	"github.com/spec-kit/asset-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	activityRepo := repository.NewLoginActivityRepository(redis.Client)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens, err := auth.NewTokenCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTAlgorithm, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to build token codec", zap.Error(err))
	}
	authenticator, err := auth.NewAuthenticator(userRepo, hasher)
	if err != nil {
		logger.Fatal("failed to build authenticator", zap.Error(err))
	}
	verifier := auth.NewSessionVerifier(tokens, userRepo, logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	userService := service.NewUserService(userRepo, hasher, activityRepo, logger).WithEvents(dispatcher)
	if cfg.Auth.SeedAdmin {
		if _, err := userService.SeedDefaultAdmin(ctx, cfg.Auth.SeedAdminUsername, cfg.Auth.SeedAdminPassword); err != nil {
			logger.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	authService := service.NewAuthService(service.AuthDependencies{
		Authenticator: authenticator,
		Tokens:        tokens,
		Activity:      activityRepo,
		Events:        dispatcher,
		Logger:        logger,
	})
	assetService := service.NewAssetService(assetRepo)

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name,
		httptransport.MiddlewareConfig{
			Logger:  logger,
			Metrics: metrics,
			Timeout: cfg.App.RequestTimeout(),
			CORS:    cfg.CORS,
		},
		httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}, metrics),
			Auth:           handlers.NewAuthHandler(authService),
			Assets:         handlers.NewAssetsHandler(assetService),
			AuthMiddleware: auth.NewAuthMiddleware(verifier),
		},
	)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
