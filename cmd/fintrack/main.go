package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/services"
	"fintrack/internal/session"
	"fintrack/internal/settings"
	"fintrack/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	startCtx, startCancel := context.WithTimeout(context.Background(), time.Minute)
	kv := cli.OpenStore(startCtx, logger, cfg)

	opts := []services.Option{
		services.WithLogger(logger.WithComponent(log.ComponentTransaction).Slog()),
	}

	cacheManager := cache.NewManager(logger.WithComponent(log.ComponentCache).Slog())
	if cfg.DashboardCacheTTL > 0 {
		dashboard := cache.NewLRUCache[core.Dashboard](1, cfg.DashboardCacheTTL)
		cacheManager.Register(dashboard)
		opts = append(opts, services.WithDashboardCache(dashboard))
	}
	cacheManager.StartCleanup(time.Minute)

	// Publishing is optional: without AMQP_URL nothing is mirrored.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(startCtx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		opts = append(opts, services.WithPublisher(amqpClient))
		logger.Info("Publishing transaction events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}
	startCancel()

	svc := services.NewTransactionService(storage.NewTransactionStore(kv), opts...)
	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Transactions: svc,
		Sessions:     session.NewManager(kv),
		Theme:        settings.NewTheme(kv),
		Logger:       logger,
		RateLimit:    ratelimit.DefaultConfig(),
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cacheManager.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("Failed to close AMQP client", log.FieldError, err)
			}
		}
		if err := kv.Close(); err != nil {
			logger.Warn("Failed to close store", log.FieldError, err)
		}
	})

	logger.Info("Starting fintrack server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
