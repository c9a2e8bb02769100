package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/config"
	"github.com/feral-file/ff-raffle/internal/logger"
	temporal "github.com/feral-file/ff-raffle/internal/providers/temporal"
	"github.com/feral-file/ff-raffle/internal/scheduler"
	"github.com/feral-file/ff-raffle/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	raffleTypes, err := cfg.Raffle.EnabledTypes()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid raffle types", zap.Error(err))
	}

	// Connect to Temporal
	temporalClient, err := temporal.Dial(cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger.Default())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	jobScheduler := scheduler.NewJobScheduler(temporalClient, scheduler.Config{TaskQueue: cfg.Temporal.RaffleTaskQueue})

	// Initialize reconcile sweeper
	reconcileSweeper := sweeper.NewReconcileSweeper(&sweeper.ReconcileSweeperConfig{
		Types:         raffleTypes,
		Interval:      cfg.Reconciler.Interval,
		PoolSize:      cfg.Reconciler.PoolSize,
		MaxRetries:    cfg.Reconciler.MaxRetries,
		RetryInterval: 5 * time.Second,
	}, jobScheduler, adapter.NewClock())

	// Start the sweeper in a goroutine
	logger.InfoCtx(ctx, "Starting sweeper", zap.String("sweeper", reconcileSweeper.Name()))
	errChan := make(chan error, 1)
	go func() {
		if err := reconcileSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := reconcileSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
