package workflows

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
)

// RaffleJob sleeps on a durable timer until the job is due, then runs the transition of its kind.
// The workflow ID is the job key so a job is never scheduled twice.
func (w *workerCore) RaffleJob(ctx workflow.Context, job domain.RaffleJob) error {
	fields := []zap.Field{
		zap.String("kind", string(job.Kind)),
		zap.String("raffleID", job.RaffleID),
		zap.Time("scheduledAt", job.ScheduledAt),
	}

	var activity interface{}
	switch job.Kind {
	case domain.JobKindActivate:
		activity = w.executor.ActivateRaffle
	case domain.JobKindEnd:
		activity = w.executor.EndRaffle
	case domain.JobKindReveal:
		activity = w.executor.RevealRaffle
	default:
		err := fmt.Errorf("%w: unknown job kind %q", domain.ErrValidation, job.Kind)
		logger.ErrorWf(ctx, err, fields...)
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeValidation, err)
	}

	if delay := job.Delay(workflow.Now(ctx)); delay > 0 {
		logger.InfoWf(ctx, "Waiting for raffle job", append(fields, zap.Duration("delay", delay))...)
		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	logger.InfoWf(ctx, "Running raffle job", fields...)

	ctx = w.activityOptions(ctx)
	if err := workflow.ExecuteActivity(ctx, activity, job.RaffleID).Get(ctx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("raffle job failed: %w", err), fields...)
		return err
	}

	logger.InfoWf(ctx, "Raffle job completed", fields...)
	return nil
}
