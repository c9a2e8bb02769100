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

func (m *manager) RecordTicketPurchase(ctx context.Context, event *domain.RaffleEvent) error {
	raffle, err := m.raffleByAddress(ctx, event.RaffleAddress)
	if err != nil {
		return err
	}

	created, err := m.store.CreateTicketPurchase(ctx, store.CreateTicketPurchaseInput{
		RaffleID:        raffle.ID,
		BuyerAddress:    event.Buyer,
		Amount:          event.TotalCost,
		Count:           event.NumberOfTickets,
		BlockNumber:     event.BlockNumber,
		TransactionHash: event.TransactionHash,
	})
	if err != nil {
		return storeErr(err)
	}

	if !created {
		logger.InfoCtx(ctx, "Duplicate ticket purchase ignored",
			zap.String("raffleID", raffle.ID),
			zap.String("txHash", event.TransactionHash))
		return nil
	}

	logger.InfoCtx(ctx, "Ticket purchase recorded",
		zap.String("raffleID", raffle.ID),
		zap.String("buyer", event.Buyer),
		zap.Int64("count", event.NumberOfTickets))
	m.invalidate(ctx, raffle.ID)

	return nil
}

func (m *manager) ConfirmRaffleDeployment(ctx context.Context, event *domain.RaffleEvent) error {
	raffle, err := m.raffleByAddress(ctx, event.RaffleAddress)
	if err != nil {
		return err
	}

	if event.TicketPrice != "" && event.TicketPrice != raffle.TicketPrice {
		logger.WarnCtx(ctx, "Deployed ticket price differs from the stored price",
			zap.String("raffleID", raffle.ID),
			zap.String("stored", raffle.TicketPrice),
			zap.String("deployed", event.TicketPrice))
	}

	if event.TokenAddress == "" || raffle.TokenAddress != nil {
		return nil
	}

	err = m.store.Transaction(ctx, func(tx store.Store) error {
		locked, err := lockRaffle(ctx, tx, raffle.ID)
		if err != nil {
			return err
		}
		if locked.TokenAddress != nil {
			return nil
		}

		token := event.TokenAddress
		locked.TokenAddress = &token
		if err := tx.UpdateRaffle(ctx, locked); err != nil {
			return storeErr(err)
		}

		logger.InfoCtx(ctx, "Raffle deployment confirmed",
			zap.String("raffleID", locked.ID),
			zap.String("token", token))
		return nil
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx, raffle.ID)
	return nil
}

func (m *manager) HandleWinnerSelectionInitiated(ctx context.Context, event *domain.RaffleEvent) error {
	raffle, err := m.raffleByAddress(ctx, event.RaffleAddress)
	if err != nil {
		return err
	}

	if raffle.Status == domain.RaffleStatusActive {
		err := m.StartWinnerSelection(ctx, raffle.ID)
		if err == nil || !errors.Is(err, domain.ErrConflictingState) {
			return err
		}
		// A concurrent end transition won the lock; apply the snapshot to its result
	}

	var job *domain.RaffleJob
	err = m.store.Transaction(ctx, func(tx store.Store) error {
		locked, err := lockRaffle(ctx, tx, raffle.ID)
		if err != nil {
			return err
		}
		if locked.Status != domain.RaffleStatusDrawing {
			return fmt.Errorf("%w: raffle %s is %s", domain.ErrConflictingState, locked.ID, locked.Status)
		}

		if event.TotalTickets > 0 && event.TotalTickets != locked.TotalTickets {
			logger.InfoCtx(ctx, "Ticket snapshot updated from chain",
				zap.String("raffleID", locked.ID),
				zap.Int64("recorded", locked.TotalTickets),
				zap.Int64("onChain", event.TotalTickets))
			locked.TotalTickets = event.TotalTickets
			if err := tx.UpdateRaffle(ctx, locked); err != nil {
				return storeErr(err)
			}
		}

		if locked.CommittedAt != nil {
			reveal := m.revealJob(locked)
			job = &reveal
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx, raffle.ID)
	if job != nil {
		m.schedule(ctx, *job)
	}
	return nil
}

func (m *manager) HandleWinnersDrawn(ctx context.Context, event *domain.RaffleEvent) error {
	if len(event.Winners) != len(event.Prizes) {
		return fmt.Errorf("%w: %d winners but %d prizes", domain.ErrValidation, len(event.Winners), len(event.Prizes))
	}

	raffle, err := m.raffleByAddress(ctx, event.RaffleAddress)
	if err != nil {
		return err
	}

	input := FinalizeInput{
		RaffleID: raffle.ID,
		Winners:  event.Winners,
		Prizes:   event.Prizes,
	}

	// Runners-up are not part of the notification
	onChain, err := m.contract.GetWinners(ctx, address(raffle))
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read runners-up, finalizing without them",
			zap.String("raffleID", raffle.ID),
			zap.Error(err))
	} else {
		input.RunnersUp = winnersInput(raffle.ID, onChain).RunnersUp
	}

	return m.FinalizeRaffle(ctx, input)
}

func (m *manager) raffleByAddress(ctx context.Context, addr string) (*schema.Raffle, error) {
	raffle, err := m.store.GetRaffleByAddress(ctx, addr)
	if err != nil {
		return nil, storeErr(err)
	}
	if raffle == nil {
		return nil, fmt.Errorf("%w: raffle at %s", domain.ErrNotFound, addr)
	}
	return raffle, nil
}
