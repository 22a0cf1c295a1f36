package main

import (
	"context"
	"errors"
	"os"
	"time"

	"gagyebu/internal/amqp"
	"gagyebu/internal/backend"
	"gagyebu/internal/cli"
	"gagyebu/internal/config"
	"gagyebu/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting gagyebu-worker")

	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).ValidateWorker)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	// The worker only reads entries; it consumes events instead of publishing them.
	backendCfg.AMQPURL = ""

	factory := backend.NewFactory(logger)
	res, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	mirror, err := factory.CreateMirror(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize mirror", "error", err)
		_ = res.Cleanup()
		os.Exit(1)
	}

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		_ = res.Cleanup()
		os.Exit(1)
	}

	mw := worker.NewMirrorWorker(res.Store, mirror)

	// Catch up on anything missed while the worker was down.
	if _, err := mw.Reconcile(ctx, mirror, nil); err != nil {
		logger.Error("Startup reconcile failed", "error", err)
	}

	go func() {
		err := consumer.ConsumeWithRetry(ctx, mw.HandleEntryEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Entry event consumption stopped", "error", err)
		}
		cancel()
	}()

	go func() {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := mw.Reconcile(ctx, mirror, nil); err != nil {
					logger.Error("Periodic reconcile failed", "error", err)
				}
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down worker...")

	cli.RunCleanup(logger, 30*time.Second, func() {
		if err := consumer.Close(); err != nil {
			logger.Error("AMQP close error", "error", err)
		}
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})
}
