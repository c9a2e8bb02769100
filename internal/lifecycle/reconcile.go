package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/store"
	"github.com/feral-file/ff-raffle/internal/store/schema"
)

// Reconcile recovers from crashes between an on-chain action and its persistence write,
// and from lost jobs
func (m *manager) Reconcile(ctx context.Context, raffleType domain.RaffleType) error {
	if !raffleType.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRaffleType, raffleType)
	}

	active, pending, err := openRaffles(ctx, m.store, raffleType)
	if err != nil {
		return err
	}

	if active == nil && pending != nil {
		if err := m.repairPending(ctx, pending); err != nil {
			return err
		}
	}

	if active == nil && pending == nil {
		if _, err := m.CreateRaffle(ctx, raffleType); err != nil {
			return fmt.Errorf("failed to create raffle: %w", err)
		}
	}

	return m.rescheduleJobs(ctx, raffleType)
}

// repairPending promotes a PENDING raffle that already accepts tickets on-chain
func (m *manager) repairPending(ctx context.Context, pending *schema.Raffle) error {
	paused, err := m.contract.Paused(ctx, address(pending))
	if err != nil {
		return err
	}
	if paused {
		return nil
	}

	var repaired bool
	err = m.store.Transaction(ctx, func(tx store.Store) error {
		raffle, err := m.lockRaffleWithType(ctx, tx, pending.ID)
		if err != nil {
			return err
		}
		if raffle.Status != domain.RaffleStatusPending {
			return nil
		}

		active, _, err := openRaffles(ctx, tx, raffle.Type)
		if err != nil {
			return err
		}
		if active != nil {
			return nil
		}

		if raffle.ActivatedAt == nil {
			now := m.clock.Now()
			raffle.ActivatedAt = &now
		}
		if err := m.promote(ctx, raffle); err != nil {
			return err
		}
		if err := tx.UpdateRaffle(ctx, raffle); err != nil {
			return storeErr(err)
		}

		logger.InfoCtx(ctx, "Repaired unpaused PENDING raffle to ACTIVE", zap.String("raffleID", raffle.ID))
		repaired = true
		return nil
	})
	if err != nil {
		return err
	}

	if repaired {
		m.invalidate(ctx, pending.ID)
	}
	return nil
}

// rescheduleJobs re-issues the pending job of every open and drawing raffle of a type
func (m *manager) rescheduleJobs(ctx context.Context, raffleType domain.RaffleType) error {
	open, err := m.store.GetOpenRafflesByType(ctx, raffleType)
	if err != nil {
		return storeErr(err)
	}
	drawing, err := m.store.GetRafflesByStatus(ctx, domain.RaffleStatusDrawing)
	if err != nil {
		return storeErr(err)
	}

	var errs []error
	for _, raffle := range append(open, drawing...) {
		if raffle.Type != raffleType {
			continue
		}

		job, ok := m.pendingJob(raffle)
		if !ok {
			continue
		}
		if err := m.scheduler.Schedule(ctx, job); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *manager) RescheduleJob(ctx context.Context, raffleID string, kind domain.JobKind) (*domain.RaffleJob, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown job kind %q", domain.ErrValidation, kind)
	}

	raffle, err := m.store.GetRaffleByID(ctx, raffleID)
	if err != nil {
		return nil, storeErr(err)
	}
	if raffle == nil {
		return nil, fmt.Errorf("%w: raffle %s", domain.ErrNotFound, raffleID)
	}

	job, ok := m.pendingJob(raffle)
	if !ok || job.Kind != kind {
		return nil, fmt.Errorf("%w: raffle %s is %s, no %s job applies",
			domain.ErrConflictingState, raffle.ID, raffle.Status, kind)
	}

	if err := m.scheduler.Schedule(ctx, job); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Raffle job re-issued", zap.String("key", job.Key()))
	return &job, nil
}

// pendingJob returns the job a raffle is waiting on in its current status
func (m *manager) pendingJob(raffle *schema.Raffle) (domain.RaffleJob, bool) {
	switch raffle.Status {
	case domain.RaffleStatusPending:
		if raffle.ActivatedAt != nil {
			return domain.RaffleJob{}, false
		}
		return m.activationJob(raffle), true
	case domain.RaffleStatusActive:
		return m.endJob(raffle), true
	case domain.RaffleStatusDrawing:
		if raffle.CommittedAt == nil {
			return domain.RaffleJob{}, false
		}
		return m.revealJob(raffle), true
	default:
		return domain.RaffleJob{}, false
	}
}
