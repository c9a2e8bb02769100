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
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/cache"
	"github.com/feral-file/ff-raffle/internal/config"
	"github.com/feral-file/ff-raffle/internal/lifecycle"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	temporal "github.com/feral-file/ff-raffle/internal/providers/temporal"
	"github.com/feral-file/ff-raffle/internal/scheduler"
	"github.com/feral-file/ff-raffle/internal/store"
	"github.com/feral-file/ff-raffle/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerCoreConfig(*configFile, *envPath)
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
			"service": "worker-core",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Core")

	raffleTypes, err := cfg.Raffle.EnabledTypes()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid raffle types", zap.Error(err))
	}

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
	clockAdapter := adapter.NewClock()

	// Initialize ethereum client and the signing gateway
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()

	transactor, err := ethereum.NewTransactor(ctx, ethClient, ethereum.TransactorConfig{
		PrivateKey:          cfg.Ethereum.PrivateKey,
		ChainID:             cfg.Ethereum.ChainID,
		GasLimitMultiplier:  cfg.Ethereum.GasLimitMultiplier,
		ReceiptTimeout:      cfg.Ethereum.ReceiptTimeout,
		ReceiptPollInterval: cfg.Ethereum.ReceiptPollInterval,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create transactor", zap.Error(err))
	}

	contract, err := ethereum.NewRaffleContract(ethClient, transactor, ethereum.ContractConfig{
		FactoryAddress: common.HexToAddress(cfg.Ethereum.FactoryAddress),
		TokenAddress:   common.HexToAddress(cfg.Ethereum.TokenAddress),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create raffle contract gateway", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum RPC",
		zap.String("operator", transactor.Address().Hex()),
		zap.String("factory", cfg.Ethereum.FactoryAddress),
	)

	// Connect to Temporal with logger integration
	temporalClient, err := temporal.Dial(cfg.Temporal.HostPort, cfg.Temporal.Namespace, logger.Default())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal",
		zap.String("host_port", cfg.Temporal.HostPort),
		zap.String("namespace", cfg.Temporal.Namespace),
	)

	// Connect to Redis to invalidate the API read cache after transitions
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}()

	jobScheduler := scheduler.NewJobScheduler(temporalClient, scheduler.Config{TaskQueue: cfg.Temporal.RaffleTaskQueue})
	manager := lifecycle.NewManager(lifecycle.Config{
		RevealDelay:    cfg.Raffle.RevealDelay,
		ActivationLead: cfg.Raffle.ActivationLead,
	}, dataStore, contract, jobScheduler, cache.NewCache(redisClient, jsonAdapter), clockAdapter, jsonAdapter)

	// Initialize executor for activities
	executor := workflows.NewExecutor(manager, adapter.NewActivity())

	// Create Temporal worker with Sentry interceptor
	sentryInterceptor := temporal.NewSentryActivityInterceptor()
	temporalWorker := worker.New(temporalClient,
		cfg.Temporal.RaffleTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				sentryInterceptor,
			},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("taskQueue", cfg.Temporal.RaffleTaskQueue))

	// Register workflows and activities
	workerCore := workflows.NewWorkerCore(executor, workflows.DefaultWorkerCoreConfig())
	workflows.Register(temporalWorker, workerCore, executor)
	logger.InfoCtx(ctx, "Registered workflows and activities")

	// Start worker
	err = temporalWorker.Start()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Repair whatever a previous run left behind
	for _, t := range raffleTypes {
		if err := jobScheduler.ScheduleReconcile(ctx, t); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("raffleType", string(t)))
			continue
		}
		logger.InfoCtx(ctx, "Startup reconciliation started", zap.String("raffleType", string(t)))
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.InfoCtx(ctx, "Shutting down worker...")
	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
