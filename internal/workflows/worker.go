package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/scheduler"
)

// WorkerCore defines the interface for the raffle lifecycle workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockCoreWorker
type WorkerCore interface {
	// RaffleJob waits until the job is due and runs its transition
	RaffleJob(ctx workflow.Context, job domain.RaffleJob) error

	// ProcessRaffleEvent applies an ingested indexer event
	ProcessRaffleEvent(ctx workflow.Context, event *domain.RaffleEvent) error

	// ReconcileRaffles repairs the raffles of a type and re-issues their jobs
	ReconcileRaffles(ctx workflow.Context, raffleType domain.RaffleType) error

	// EnsureRaffleSuccessor keeps a PENDING successor prepared. It runs on a cron schedule.
	EnsureRaffleSuccessor(ctx workflow.Context, raffleType domain.RaffleType) error
}

// WorkerCoreConfig holds the activity policy of the core workflows
type WorkerCoreConfig struct {
	// MaxAttempts bounds the attempts of every activity
	MaxAttempts int32
	// InitialRetryInterval is the delay before the first retry
	InitialRetryInterval time.Duration
	// BackoffCoefficient multiplies the retry interval after each attempt
	BackoffCoefficient float64
	// ActivityTimeout bounds one activity attempt. It must cover several receipt waits.
	ActivityTimeout time.Duration
}

// DefaultWorkerCoreConfig returns the default job policy: 3 attempts, 60s initial backoff, coefficient 2
func DefaultWorkerCoreConfig() WorkerCoreConfig {
	return WorkerCoreConfig{
		MaxAttempts:          3,
		InitialRetryInterval: 60 * time.Second,
		BackoffCoefficient:   2,
		ActivityTimeout:      15 * time.Minute,
	}
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	defaults := DefaultWorkerCoreConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.InitialRetryInterval <= 0 {
		config.InitialRetryInterval = defaults.InitialRetryInterval
	}
	if config.BackoffCoefficient < 1 {
		config.BackoffCoefficient = defaults.BackoffCoefficient
	}
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = defaults.ActivityTimeout
	}

	return &workerCore{
		executor: executor,
		config:   config,
	}
}

// activityOptions applies the job retry policy to ctx
func (w *workerCore) activityOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    w.config.InitialRetryInterval,
			BackoffCoefficient: w.config.BackoffCoefficient,
			MaximumAttempts:    w.config.MaxAttempts,
		},
	})
}

// Registry is the part of a Temporal worker that workflows and activities are registered on
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivity(a interface{})
}

// Register registers the core workflows under the names the scheduler starts them by,
// together with the activities they run
func Register(registry Registry, core WorkerCore, executor Executor) {
	registry.RegisterWorkflowWithOptions(core.RaffleJob, workflow.RegisterOptions{Name: scheduler.WorkflowRaffleJob})
	registry.RegisterWorkflowWithOptions(core.ProcessRaffleEvent, workflow.RegisterOptions{Name: scheduler.WorkflowProcessRaffleEvent})
	registry.RegisterWorkflowWithOptions(core.ReconcileRaffles, workflow.RegisterOptions{Name: scheduler.WorkflowReconcileRaffles})
	registry.RegisterWorkflowWithOptions(core.EnsureRaffleSuccessor, workflow.RegisterOptions{Name: scheduler.WorkflowEnsureRaffleSuccessor})

	registry.RegisterActivity(executor.ActivateRaffle)
	registry.RegisterActivity(executor.EndRaffle)
	registry.RegisterActivity(executor.RevealRaffle)
	registry.RegisterActivity(executor.ProcessRaffleEvent)
	registry.RegisterActivity(executor.ReconcileRaffles)
	registry.RegisterActivity(executor.EnsureRaffleSuccessor)
}
