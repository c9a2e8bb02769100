package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/bridge"
	"github.com/feral-file/ff-raffle/internal/config"
	"github.com/feral-file/ff-raffle/internal/logger"
	temporal "github.com/feral-file/ff-raffle/internal/providers/temporal"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEventBridgeConfig(*configFile, *envPath)
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
			"service": "event-bridge",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Event Bridge")

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Connect to Temporal (for starting the event workflows remotely)
	temporalClient, err := temporal.Dial(cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger.Default())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create bridge
	eventBridge, err := bridge.NewBridge(
		bridge.Config{
			URL:               cfg.NATS.URL,
			StreamName:        cfg.NATS.StreamName,
			ConsumerName:      cfg.NATS.ConsumerName,
			MaxReconnects:     cfg.NATS.MaxReconnects,
			ReconnectWait:     cfg.NATS.ReconnectWait,
			ConnectionName:    cfg.NATS.ConnectionName,
			AckWaitTimeout:    cfg.NATS.AckWait,
			MaxDeliver:        cfg.NATS.MaxDeliver,
			TemporalTaskQueue: cfg.Temporal.RaffleTaskQueue,
		},
		natsJS,
		temporalClient,
		jsonAdapter,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()
	logger.InfoCtx(ctx, "Event bridge created", zap.String("stream", cfg.NATS.StreamName), zap.String("consumer", cfg.NATS.ConsumerName))

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Run returns once in-flight messages are finished
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- eventBridge.Run(ctx)
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		if err := <-doneCh; err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(err, zap.String("component", "bridge"))
		}
	case err := <-doneCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(err, zap.String("component", "bridge"))
		}
		cancel()
	}

	logger.Info("Event Bridge stopped")
}
