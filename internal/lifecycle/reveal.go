package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/lottery"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	"github.com/feral-file/ff-raffle/internal/store"
	"github.com/feral-file/ff-raffle/internal/store/schema"
)

// ErrTicketSnapshotMissing is returned when a raffle has participants but no recorded tickets yet
var ErrTicketSnapshotMissing = errors.New("ticket snapshot not available")

func (m *manager) RevealWinners(ctx context.Context, raffleID string) error {
	err := m.store.Transaction(ctx, func(tx store.Store) error {
		raffle, err := lockRaffle(ctx, tx, raffleID)
		if err != nil {
			return err
		}

		if raffle.Status != domain.RaffleStatusDrawing {
			return fmt.Errorf("%w: raffle %s is %s", domain.ErrConflictingState, raffle.ID, raffle.Status)
		}
		if raffle.CommittedAt == nil || raffle.RandomValue == nil || raffle.Seed == nil {
			return fmt.Errorf("%w: raffle %s has no commitment", domain.ErrValidation, raffle.ID)
		}

		eligibleAt := lottery.EligibleAt(*raffle.CommittedAt, m.config.RevealDelay)
		if m.clock.Now().Before(eligibleAt) {
			return fmt.Errorf("%w: raffle %s is eligible at %s",
				domain.ErrRevealNotEligible, raffle.ID, eligibleAt.Format(time.RFC3339))
		}

		info, err := m.contract.GetRaffleInfo(ctx, address(raffle))
		if err != nil {
			return err
		}

		if info.Status == domain.ContractStatusCompleted {
			logger.InfoCtx(ctx, "Raffle already revealed on-chain, finalizing", zap.String("raffleID", raffle.ID))
		} else if err := m.reveal(ctx, raffle, info); err != nil {
			return err
		}

		winners, err := m.contract.GetWinners(ctx, address(raffle))
		if err != nil {
			return err
		}

		return m.finalize(ctx, tx, raffle, winnersInput(raffle.ID, winners))
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx, raffleID)
	return nil
}

// reveal derives the winners from the committed random value and submits them with the secrets
func (m *manager) reveal(ctx context.Context, raffle *schema.Raffle, info *ethereum.RaffleInfo) error {
	randomValue := common.HexToHash(*raffle.RandomValue)
	seed := common.HexToHash(*raffle.Seed)
	if raffle.CommitHash != nil && !lottery.VerifyCommitment(randomValue, seed, common.HexToHash(*raffle.CommitHash)) {
		return fmt.Errorf("%w: raffle %s secrets do not match the commitment", domain.ErrValidation, raffle.ID)
	}

	if info.Participants == 0 {
		return fmt.Errorf("%w: raffle %s has no participants", domain.ErrValidation, raffle.ID)
	}
	if raffle.TotalTickets <= 0 {
		return fmt.Errorf("%w: raffle %s", ErrTicketSnapshotMissing, raffle.ID)
	}

	n := min(domain.WinnerCount, int(info.Participants))
	draw, err := lottery.DeriveWinners(ctx, randomValue, uint64(raffle.TotalTickets), n,
		ethereum.NewContractOwnerLookup(m.contract, address(raffle)))
	if err != nil {
		return fmt.Errorf("failed to derive winners: %w", err)
	}

	if err := m.contract.RevealAndDraw(ctx, address(raffle), randomValue, seed, draw.Winners); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Winners revealed",
		zap.String("raffleID", raffle.ID),
		zap.Int("winners", len(draw.Winners)),
		zap.Int("steps", len(draw.Indices)))

	return nil
}

func (m *manager) FinalizeRaffle(ctx context.Context, input FinalizeInput) error {
	if len(input.Winners) != len(input.Prizes) {
		return fmt.Errorf("%w: %d winners but %d prizes", domain.ErrValidation, len(input.Winners), len(input.Prizes))
	}

	err := m.store.Transaction(ctx, func(tx store.Store) error {
		raffle, err := lockRaffle(ctx, tx, input.RaffleID)
		if err != nil {
			return err
		}

		if raffle.Status.IsTerminal() {
			return fmt.Errorf("%w: raffle %s is %s", domain.ErrConflictingState, raffle.ID, raffle.Status)
		}

		return m.finalize(ctx, tx, raffle, input)
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx, input.RaffleID)
	return nil
}

// finalize persists prizes and winners and completes the raffle
func (m *manager) finalize(ctx context.Context, tx store.Store, raffle *schema.Raffle, input FinalizeInput) error {
	if len(input.Winners) != len(input.Prizes) {
		return fmt.Errorf("%w: %d winners but %d prizes", domain.ErrValidation, len(input.Winners), len(input.Prizes))
	}

	prizes := make([]store.CreatePrizeInput, 0, len(input.Winners))
	for i, winner := range input.Winners {
		if _, err := domain.ParseAmount(input.Prizes[i]); err != nil {
			return err
		}
		prizes = append(prizes, store.CreatePrizeInput{
			WinnerAddress: winner,
			Amount:        input.Prizes[i],
			Rank:          i + 1,
		})
	}
	if err := tx.CreatePrizes(ctx, raffle.ID, prizes); err != nil {
		return storeErr(err)
	}

	addresses := make([]string, len(input.Winners))
	for i, w := range input.Winners {
		addresses[i] = domain.NormalizeAddress(w)
	}
	amounts := append([]string{}, input.Prizes...)
	winnersJSON, err := m.json.Marshal(schema.RaffleWinners{Addresses: addresses, Prizes: amounts})
	if err != nil {
		return fmt.Errorf("failed to marshal winners: %w", err)
	}

	runnersUp := make([]string, len(input.RunnersUp))
	for i, r := range input.RunnersUp {
		runnersUp[i] = domain.NormalizeAddress(r)
	}
	runnersUpJSON, err := m.json.Marshal(runnersUp)
	if err != nil {
		return fmt.Errorf("failed to marshal runners-up: %w", err)
	}

	now := m.clock.Now()
	raffle.Winners = datatypes.JSON(winnersJSON)
	raffle.RunnersUp = datatypes.JSON(runnersUpJSON)
	raffle.DrawAt = &now
	raffle.IsDrawComplete = true
	raffle.Status = domain.RaffleStatusCompleted

	if err := tx.UpdateRaffle(ctx, raffle); err != nil {
		return storeErr(err)
	}

	logger.InfoCtx(ctx, "Raffle completed",
		zap.String("raffleID", raffle.ID),
		zap.Int("winners", len(input.Winners)))

	return nil
}

func winnersInput(raffleID string, winners *ethereum.RaffleWinners) FinalizeInput {
	input := FinalizeInput{RaffleID: raffleID}
	for _, w := range winners.Winners {
		input.Winners = append(input.Winners, w.Hex())
	}
	for _, p := range winners.Prizes {
		input.Prizes = append(input.Prizes, p.String())
	}
	for _, r := range winners.RunnersUp {
		input.RunnersUp = append(input.RunnersUp, r.Hex())
	}
	return input
}
