package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/lifecycle"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
)

// Application error types reported to Temporal
const (
	ErrorTypeNotFound   = "NotFound"
	ErrorTypeValidation = "Validation"
	ErrorTypeReadOnly   = "ReadOnly"
)

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// ActivateRaffle runs the activation transition of a PENDING raffle
	ActivateRaffle(ctx context.Context, raffleID string) error

	// EndRaffle ends an ACTIVE raffle and commits its draw
	EndRaffle(ctx context.Context, raffleID string) error

	// RevealRaffle reveals the draw secrets of a DRAWING raffle and records its winners
	RevealRaffle(ctx context.Context, raffleID string) error

	// ProcessRaffleEvent applies an ingested indexer event
	ProcessRaffleEvent(ctx context.Context, event *domain.RaffleEvent) error

	// ReconcileRaffles repairs the raffles of a type and re-issues their jobs
	ReconcileRaffles(ctx context.Context, raffleType domain.RaffleType) error

	// EnsureRaffleSuccessor makes sure a raffle of the type is open and a PENDING successor is prepared
	EnsureRaffleSuccessor(ctx context.Context, raffleType domain.RaffleType) error
}

// executor is the concrete implementation of Executor
type executor struct {
	manager          lifecycle.Manager
	temporalActivity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(manager lifecycle.Manager, temporalActivity adapter.Activity) Executor {
	return &executor{
		manager:          manager,
		temporalActivity: temporalActivity,
	}
}

// ActivateRaffle runs the activation transition of a PENDING raffle
func (e *executor) ActivateRaffle(ctx context.Context, raffleID string) error {
	err := e.manager.ActivateRaffle(ctx, raffleID)
	return e.activityError(ctx, "ActivateRaffle", err, zap.String("raffleID", raffleID))
}

// EndRaffle ends an ACTIVE raffle and commits its draw
func (e *executor) EndRaffle(ctx context.Context, raffleID string) error {
	err := e.manager.StartWinnerSelection(ctx, raffleID)
	return e.activityError(ctx, "EndRaffle", err, zap.String("raffleID", raffleID))
}

// RevealRaffle reveals the draw secrets of a DRAWING raffle and records its winners
func (e *executor) RevealRaffle(ctx context.Context, raffleID string) error {
	err := e.manager.RevealWinners(ctx, raffleID)
	return e.activityError(ctx, "RevealRaffle", err, zap.String("raffleID", raffleID))
}

// ProcessRaffleEvent applies an ingested indexer event.
// A raffle that is not found is retried: events may outrun the commit of the deploying transaction.
func (e *executor) ProcessRaffleEvent(ctx context.Context, event *domain.RaffleEvent) error {
	if event == nil {
		return e.activityError(ctx, "ProcessRaffleEvent", fmt.Errorf("%w: nil event", domain.ErrValidation))
	}

	fields := []zap.Field{
		zap.String("activity", "ProcessRaffleEvent"),
		zap.String("eventID", event.ID),
		zap.String("entity", string(event.Entity)),
		zap.String("raffleAddress", event.RaffleAddress),
	}

	var err error
	switch event.Entity {
	case domain.EventEntityRaffleCreated:
		err = e.manager.ConfirmRaffleDeployment(ctx, event)
	case domain.EventEntityTicketsBought:
		err = e.manager.RecordTicketPurchase(ctx, event)
	case domain.EventEntityWinnerSelectionInitiated:
		err = e.manager.HandleWinnerSelectionInitiated(ctx, event)
	case domain.EventEntityWinnersDrawn:
		err = e.manager.HandleWinnersDrawn(ctx, event)
	default:
		err = fmt.Errorf("%w: unsupported entity %q", domain.ErrValidation, event.Entity)
	}

	if errors.Is(err, domain.ErrNotFound) {
		e.logRetry(ctx, err, append(fields, zap.Error(err))...)
		return temporal.NewApplicationErrorWithCause(err.Error(), ErrorTypeNotFound, err)
	}

	return e.activityError(ctx, "ProcessRaffleEvent", err, fields[1:]...)
}

// ReconcileRaffles repairs the raffles of a type and re-issues their jobs
func (e *executor) ReconcileRaffles(ctx context.Context, raffleType domain.RaffleType) error {
	err := e.manager.Reconcile(ctx, raffleType)
	return e.activityError(ctx, "ReconcileRaffles", err, zap.String("type", string(raffleType)))
}

// EnsureRaffleSuccessor makes sure a raffle of the type is open and a PENDING successor is prepared
func (e *executor) EnsureRaffleSuccessor(ctx context.Context, raffleType domain.RaffleType) error {
	raffle, err := e.manager.CreateRaffle(ctx, raffleType)
	if err != nil {
		return e.activityError(ctx, "EnsureRaffleSuccessor", err, zap.String("type", string(raffleType)))
	}

	logger.InfoCtx(ctx, "Raffle successor ensured",
		zap.String("type", string(raffleType)),
		zap.String("raffleID", raffle.ID),
		zap.String("status", string(raffle.Status)))

	return nil
}

// activityError maps lifecycle errors onto Temporal's retry semantics
func (e *executor) activityError(ctx context.Context, activity string, err error, fields ...zap.Field) error {
	if err == nil {
		return nil
	}

	fields = append(fields, zap.String("activity", activity), zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrConflictingState):
		logger.InfoCtx(ctx, "Raffle transition skipped", fields...)
		return nil

	case errors.Is(err, domain.ErrNotFound):
		logger.WarnCtx(ctx, "Raffle not found", fields...)
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeNotFound, err)

	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRaffleType):
		logger.WarnCtx(ctx, "Rejected invalid raffle input", fields...)
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeValidation, err)

	case errors.Is(err, ethereum.ErrReadOnly):
		logger.ErrorCtx(ctx, err, fields...)
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeReadOnly, err)
	}

	e.logRetry(ctx, err, fields...)
	return err
}

func (e *executor) logRetry(ctx context.Context, err error, fields ...zap.Field) {
	info := e.temporalActivity.GetInfo(ctx)
	fields = append(fields, zap.Int32("attempt", info.Attempt))

	if errors.Is(err, domain.ErrRevealNotEligible) {
		logger.InfoCtx(ctx, "Raffle not ready, retrying", fields...)
		return
	}
	logger.ErrorCtx(ctx, fmt.Errorf("raffle activity failed: %w", err), fields...)
}
