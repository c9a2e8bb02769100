package scheduler

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/providers/temporal"
)

// Workflow names registered by the core worker
const (
	WorkflowRaffleJob             = "RaffleJob"
	WorkflowProcessRaffleEvent    = "ProcessRaffleEvent"
	WorkflowReconcileRaffles      = "ReconcileRaffles"
	WorkflowEnsureRaffleSuccessor = "EnsureRaffleSuccessor"
)

// Config holds the scheduler configuration
type Config struct {
	TaskQueue string
}

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=JobScheduler=MockJobScheduler

// JobScheduler enqueues durable delayed raffle jobs.
// Scheduling a job whose key is already running or completed is a no-op.
type JobScheduler interface {
	// Schedule enqueues a job to run at job.ScheduledAt
	Schedule(ctx context.Context, job domain.RaffleJob) error
	// ScheduleReconcile starts a reconciliation of the raffles of a type
	ScheduleReconcile(ctx context.Context, raffleType domain.RaffleType) error
	// ScheduleSuccessorCheck registers the cron workflow that keeps a PENDING successor ready
	ScheduleSuccessorCheck(ctx context.Context, raffleType domain.RaffleType, cronSchedule string) error
}

type jobScheduler struct {
	orchestrator temporal.TemporalOrchestrator
	config       Config
}

// NewJobScheduler creates a Temporal backed job scheduler
func NewJobScheduler(orchestrator temporal.TemporalOrchestrator, cfg Config) JobScheduler {
	return &jobScheduler{
		orchestrator: orchestrator,
		config:       cfg,
	}
}

// Schedule starts the job workflow keyed by the job key. The workflow sleeps on a
// durable timer until the scheduled time before running the transition.
func (s *jobScheduler) Schedule(ctx context.Context, job domain.RaffleJob) error {
	if !job.Kind.Valid() {
		return fmt.Errorf("%w: unknown job kind %q", domain.ErrValidation, job.Kind)
	}
	if job.RaffleID == "" {
		return fmt.Errorf("%w: job without raffle ID", domain.ErrValidation)
	}

	options := client.StartWorkflowOptions{
		ID:                    job.Key(),
		TaskQueue:             s.config.TaskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}

	if err := s.start(ctx, options, WorkflowRaffleJob, job); err != nil {
		return fmt.Errorf("failed to schedule %s job for raffle %s: %w", job.Kind, job.RaffleID, err)
	}

	logger.InfoCtx(ctx, "Raffle job scheduled",
		zap.String("key", job.Key()),
		zap.Time("scheduledAt", job.ScheduledAt))

	return nil
}

func (s *jobScheduler) ScheduleReconcile(ctx context.Context, raffleType domain.RaffleType) error {
	options := client.StartWorkflowOptions{
		ID:                    ReconcileWorkflowID(raffleType),
		TaskQueue:             s.config.TaskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}

	if err := s.start(ctx, options, WorkflowReconcileRaffles, raffleType); err != nil {
		return fmt.Errorf("failed to start reconciliation for %s: %w", raffleType, err)
	}
	return nil
}

func (s *jobScheduler) ScheduleSuccessorCheck(ctx context.Context, raffleType domain.RaffleType, cronSchedule string) error {
	options := client.StartWorkflowOptions{
		ID:           fmt.Sprintf("raffle-successor-check-%s", raffleType),
		TaskQueue:    s.config.TaskQueue,
		CronSchedule: cronSchedule,
	}

	if err := s.start(ctx, options, WorkflowEnsureRaffleSuccessor, raffleType); err != nil {
		return fmt.Errorf("failed to register successor check for %s: %w", raffleType, err)
	}
	return nil
}

// start executes a workflow and treats an already started execution as success
func (s *jobScheduler) start(ctx context.Context, options client.StartWorkflowOptions, workflow string, args ...interface{}) error {
	_, err := s.orchestrator.ExecuteWorkflow(ctx, options, workflow, args...)
	if err == nil {
		return nil
	}

	if IsAlreadyStarted(err) {
		logger.DebugCtx(ctx, "Workflow already started", zap.String("workflowID", options.ID))
		return nil
	}

	return err
}

// ReconcileWorkflowID returns the workflow ID of the reconciliation of a raffle type
func ReconcileWorkflowID(raffleType domain.RaffleType) string {
	return fmt.Sprintf("raffle-reconcile-%s", raffleType)
}

// IsAlreadyStarted reports whether err is Temporal's duplicate workflow ID rejection
func IsAlreadyStarted(err error) bool {
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	return errors.As(err, &alreadyStarted)
}
