package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/revobooking/revo-ui/config"
	"github.com/revobooking/revo-ui/internal/bootstrap"
	"github.com/revobooking/revo-ui/internal/observability/telemetry"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}

	logger := bootstrap.InitLogger(cfg.IsDev)
	if err := run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (err error) {
	logStartupInfo(ctx, logger, cfg)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Observability.Tracing, logger)
	if err != nil {
		return err
	}
	defer func() {
		if serr := shutdownTracing(context.WithoutCancel(ctx)); serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	var redisClient redis.UniversalClient
	if cfg.UsesRedis() {
		redisClient, err = bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting revo-ui",
		"addr", cfg.HTTP.Addr,
		"api_url", cfg.API.BaseURL,
		"session_store", cfg.Session.Store,
		"dev", cfg.IsDev,
		"metrics", cfg.Observability.Metrics.IsEnabled(),
		"tracing", cfg.Observability.Tracing.IsEnabled())
}
