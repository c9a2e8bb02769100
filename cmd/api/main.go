package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/api/middleware"
	"github.com/feral-file/ff-raffle/internal/api/server"
	"github.com/feral-file/ff-raffle/internal/api/shared/executor"
	"github.com/feral-file/ff-raffle/internal/cache"
	"github.com/feral-file/ff-raffle/internal/config"
	"github.com/feral-file/ff-raffle/internal/lifecycle"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	"github.com/feral-file/ff-raffle/internal/providers/jetstream"
	temporal "github.com/feral-file/ff-raffle/internal/providers/temporal"
	"github.com/feral-file/ff-raffle/internal/ratelimit"
	"github.com/feral-file/ff-raffle/internal/scheduler"
	"github.com/feral-file/ff-raffle/internal/store"
	"github.com/feral-file/ff-raffle/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Raffle API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Connect to the chain. The API never signs, so the gateway is read-only.
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()

	contract, err := ethereum.NewRaffleContract(ethClient, nil, ethereum.ContractConfig{
		FactoryAddress: common.HexToAddress(cfg.Ethereum.FactoryAddress),
		TokenAddress:   common.HexToAddress(cfg.Ethereum.TokenAddress),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create raffle contract gateway", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("factory", cfg.Ethereum.FactoryAddress))

	// Connect to Temporal with logger integration
	temporalClient, err := temporal.Dial(cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger.Default())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

	// Connect to NATS for webhook ingestion
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Connect to Redis for the read cache and the rate limiter
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}()
	viewCache := cache.NewCache(redisClient, jsonAdapter)

	jobScheduler := scheduler.NewJobScheduler(temporalClient, scheduler.Config{TaskQueue: cfg.Temporal.RaffleTaskQueue})
	manager := lifecycle.NewManager(lifecycle.Config{
		RevealDelay:    cfg.Raffle.RevealDelay,
		ActivationLead: cfg.Raffle.ActivationLead,
	}, dataStore, contract, jobScheduler, viewCache, clock, jsonAdapter)

	var limiter ratelimit.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter, err = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
		defer limiter.Close()
	} else {
		logger.WarnCtx(ctx, "Rate limit not configured, public routes are unlimited")
	}

	exec := executor.NewExecutor(executor.Deps{
		Store:     dataStore,
		Contract:  contract,
		Manager:   manager,
		Scheduler: jobScheduler,
		Publisher: publisher,
		Events:    webhook.NewEventBuilder(jsonAdapter, adapter.NewJCS(), clock),
		Cache:     viewCache,
		Clock:     clock,
		JSON:      jsonAdapter,
	}, executor.CacheTTLs{
		Raffles:      cfg.Cache.RafflesTTL,
		Raffle:       cfg.Cache.RaffleTTL,
		Winners:      cfg.Cache.WinnersTTL,
		Verification: cfg.Cache.VerificationTTL,
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		WebhookSecret: cfg.Webhook.Secret,
	}

	srv := server.New(serverConfig, exec, limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
