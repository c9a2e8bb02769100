package workflows

import (
	"fmt"

	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
)

// ProcessRaffleEvent applies an ingested indexer event.
// The workflow ID carries the dedup key so redelivered payloads map to one execution.
func (w *workerCore) ProcessRaffleEvent(ctx workflow.Context, event *domain.RaffleEvent) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", domain.ErrValidation)
	}

	fields := []zap.Field{
		zap.String("eventID", event.ID),
		zap.String("entity", string(event.Entity)),
		zap.String("raffleAddress", event.RaffleAddress),
	}
	logger.InfoWf(ctx, "Processing raffle event", fields...)

	ctx = w.activityOptions(ctx)
	if err := workflow.ExecuteActivity(ctx, w.executor.ProcessRaffleEvent, event).Get(ctx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to process raffle event: %w", err), fields...)
		return err
	}

	logger.InfoWf(ctx, "Raffle event processed", fields...)
	return nil
}

// ReconcileRaffles repairs the raffles of a type and re-issues their jobs
func (w *workerCore) ReconcileRaffles(ctx workflow.Context, raffleType domain.RaffleType) error {
	logger.InfoWf(ctx, "Reconciling raffles", zap.String("type", string(raffleType)))

	ctx = w.activityOptions(ctx)
	if err := workflow.ExecuteActivity(ctx, w.executor.ReconcileRaffles, raffleType).Get(ctx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to reconcile raffles: %w", err), zap.String("type", string(raffleType)))
		return err
	}

	logger.InfoWf(ctx, "Raffles reconciled", zap.String("type", string(raffleType)))
	return nil
}

// EnsureRaffleSuccessor keeps a PENDING successor of the type prepared. It runs on a cron schedule;
// a failed run is logged and the next scheduled run tries again.
func (w *workerCore) EnsureRaffleSuccessor(ctx workflow.Context, raffleType domain.RaffleType) error {
	logger.InfoWf(ctx, "Checking raffle successor", zap.String("type", string(raffleType)))

	ctx = w.activityOptions(ctx)
	if err := workflow.ExecuteActivity(ctx, w.executor.EnsureRaffleSuccessor, raffleType).Get(ctx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to ensure raffle successor: %w", err), zap.String("type", string(raffleType)))
		return err
	}

	return nil
}
