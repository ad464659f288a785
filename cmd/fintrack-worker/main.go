package main

import (
	"context"
	"errors"
	"os"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting fintrack-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), time.Minute)
	defer startCancel()

	kv := cli.OpenStore(startCtx, logger, cfg)
	defer kv.Close()

	mirror := cli.OpenMirror(startCtx, logger, cfg)
	mirrorWorker := worker.NewMirrorWorker(mirror, cfg.ResyncConcurrency)

	amqpClient, err := amqp.NewClient(startCtx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Catch up on events missed while the worker was down.
	list, err := storage.NewTransactionStore(kv).Load(ctx)
	if err != nil {
		logger.Error("Failed to load transactions for resync", log.FieldError, err)
	} else if err := mirrorWorker.Resync(ctx, list); err != nil {
		logger.Error("Startup resync failed", log.FieldError, err)
	}

	if err := amqpClient.Consume(ctx, mirrorWorker.Handle); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped")
}
