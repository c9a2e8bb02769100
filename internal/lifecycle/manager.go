package lifecycle

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/cache"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/lottery"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	"github.com/feral-file/ff-raffle/internal/scheduler"
	"github.com/feral-file/ff-raffle/internal/store"
	"github.com/feral-file/ff-raffle/internal/store/schema"
)

// Config holds the lifecycle configuration
type Config struct {
	// RevealDelay is the minimum time between commitment and reveal
	RevealDelay time.Duration
	// ActivationLead is how long before the predecessor ends the successor is unpaused
	ActivationLead time.Duration
	// Entropy is the randomness source of commitments. Defaults to crypto/rand.
	Entropy io.Reader
}

// FinalizeInput carries the winners recorded on-chain for a raffle
type FinalizeInput struct {
	RaffleID  string
	Winners   []string
	Prizes    []string
	RunnersUp []string
}

// Manager drives raffles through PENDING -> ACTIVE -> DRAWING -> COMPLETED (or ENDED)
//
//go:generate mockgen -source=manager.go -destination=../mocks/lifecycle_manager.go -package=mocks -mock_names=Manager=MockLifecycleManager
type Manager interface {
	// CreateRaffle ensures an open raffle of the type exists: an ACTIVE one when none is open,
	// otherwise a PENDING successor of the ACTIVE one
	CreateRaffle(ctx context.Context, raffleType domain.RaffleType) (*schema.Raffle, error)
	// ActivateRaffle unpauses a PENDING raffle ahead of its predecessor's end
	ActivateRaffle(ctx context.Context, raffleID string) error
	// StartWinnerSelection ends an ACTIVE raffle, ensures its successor and commits the draw secrets
	StartWinnerSelection(ctx context.Context, raffleID string) error
	// RevealWinners reveals the secrets of a DRAWING raffle and records the winners
	RevealWinners(ctx context.Context, raffleID string) error
	// FinalizeRaffle records winners and prizes and completes the raffle
	FinalizeRaffle(ctx context.Context, input FinalizeInput) error

	// RecordTicketPurchase handles a tickets_bought event
	RecordTicketPurchase(ctx context.Context, event *domain.RaffleEvent) error
	// ConfirmRaffleDeployment handles a raffle_created event
	ConfirmRaffleDeployment(ctx context.Context, event *domain.RaffleEvent) error
	// HandleWinnerSelectionInitiated handles a winner_selection_initiated event
	HandleWinnerSelectionInitiated(ctx context.Context, event *domain.RaffleEvent) error
	// HandleWinnersDrawn handles a winners_drawn event
	HandleWinnersDrawn(ctx context.Context, event *domain.RaffleEvent) error

	// Reconcile repairs the raffles of a type after crashes and re-issues their jobs
	Reconcile(ctx context.Context, raffleType domain.RaffleType) error
	// RescheduleJob re-issues a job of the given kind for a raffle
	RescheduleJob(ctx context.Context, raffleID string, kind domain.JobKind) (*domain.RaffleJob, error)
}

type manager struct {
	config    Config
	store     store.Store
	contract  ethereum.RaffleContract
	scheduler scheduler.JobScheduler
	cache     cache.Cache
	clock     adapter.Clock
	json      adapter.JSON
}

// NewManager creates a lifecycle manager
func NewManager(
	cfg Config,
	st store.Store,
	contract ethereum.RaffleContract,
	jobScheduler scheduler.JobScheduler,
	viewCache cache.Cache,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
) Manager {
	if cfg.RevealDelay == 0 {
		cfg.RevealDelay = domain.DefaultRevealDelay
	}
	if cfg.ActivationLead == 0 {
		cfg.ActivationLead = domain.ActivationLead
	}
	if cfg.Entropy == nil {
		cfg.Entropy = rand.Reader
	}

	return &manager{
		config:    cfg,
		store:     st,
		contract:  contract,
		scheduler: jobScheduler,
		cache:     viewCache,
		clock:     clock,
		json:      jsonAdapter,
	}
}

// CreateRaffle runs under the per-type lock so concurrent callers observe each other's raffles
func (m *manager) CreateRaffle(ctx context.Context, raffleType domain.RaffleType) (*schema.Raffle, error) {
	cfg, err := domain.ConfigFor(raffleType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	var raffle *schema.Raffle
	var job *domain.RaffleJob
	var predecessorID string

	err = m.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.LockRaffleType(ctx, raffleType); err != nil {
			return storeErr(err)
		}

		active, pending, err := openRaffles(ctx, tx, raffleType)
		if err != nil {
			return err
		}

		switch {
		case pending != nil:
			raffle = pending
			return nil

		case active == nil:
			raffle, err = m.deployActive(ctx, cfg)
			if err != nil {
				return err
			}
			if err := tx.CreateRaffle(ctx, raffle); err != nil {
				return storeErr(err)
			}
			j := m.endJob(raffle)
			job = &j
			return nil

		default:
			raffle, err = m.deployPending(ctx, cfg, active)
			if err != nil {
				return err
			}
			if err := tx.CreateRaffle(ctx, raffle); err != nil {
				return storeErr(err)
			}
			// Ticket purchases keep updating the predecessor's counters while the successor deploys
			if err := tx.SetNextRaffle(ctx, active.ID, raffle.ID); err != nil {
				return storeErr(err)
			}
			predecessorID = active.ID
			j := m.activationJob(raffle)
			job = &j
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	if job != nil {
		logger.InfoCtx(ctx, "Raffle created",
			zap.String("raffleID", raffle.ID),
			zap.String("type", string(raffle.Type)),
			zap.String("status", string(raffle.Status)),
			zap.String("address", raffle.Address))
		m.invalidate(ctx, raffle.ID, predecessorID)
		m.schedule(ctx, *job)
	}

	return raffle, nil
}

func (m *manager) ActivateRaffle(ctx context.Context, raffleID string) error {
	var job *domain.RaffleJob

	err := m.store.Transaction(ctx, func(tx store.Store) error {
		raffle, err := m.lockRaffleWithType(ctx, tx, raffleID)
		if err != nil {
			return err
		}

		if raffle.Status != domain.RaffleStatusPending || raffle.ActivatedAt != nil {
			return fmt.Errorf("%w: raffle %s is %s (activated: %t)",
				domain.ErrConflictingState, raffle.ID, raffle.Status, raffle.ActivatedAt != nil)
		}

		if err := m.ensureUnpaused(ctx, raffle); err != nil {
			return err
		}
		now := m.clock.Now()
		raffle.ActivatedAt = &now

		active, _, err := openRaffles(ctx, tx, raffle.Type)
		if err != nil {
			return err
		}

		// The predecessor's end transition promotes the raffle while the predecessor is still ACTIVE
		if active == nil {
			if err := m.promote(ctx, raffle); err != nil {
				return err
			}
			j := m.endJob(raffle)
			job = &j
		}

		if err := tx.UpdateRaffle(ctx, raffle); err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Raffle activated", zap.String("raffleID", raffleID), zap.Bool("promoted", job != nil))
	m.invalidate(ctx, raffleID)
	if job != nil {
		m.schedule(ctx, *job)
	}

	return nil
}

// StartWinnerSelection is the single critical section of end + successor + commit
func (m *manager) StartWinnerSelection(ctx context.Context, raffleID string) error {
	var jobs []domain.RaffleJob
	var final domain.RaffleStatus
	var successorID string

	err := m.store.Transaction(ctx, func(tx store.Store) error {
		raffle, err := m.lockRaffleWithType(ctx, tx, raffleID)
		if err != nil {
			return err
		}

		if raffle.Status != domain.RaffleStatusActive {
			return fmt.Errorf("%w: raffle %s is %s", domain.ErrConflictingState, raffle.ID, raffle.Status)
		}

		successor, isNew, err := m.prepareSuccessor(ctx, tx, raffle)
		if err != nil {
			return err
		}
		raffle.NextRaffleID = &successor.ID

		info, err := m.contract.GetRaffleInfo(ctx, address(raffle))
		if err != nil {
			return err
		}

		switch {
		case info.NeedsFallback || info.Participants == 0:
			raffle.Status = domain.RaffleStatusEnded
			logger.WarnCtx(ctx, "Raffle ended without draw",
				zap.String("raffleID", raffle.ID),
				zap.Bool("needsFallback", info.NeedsFallback),
				zap.Uint64("participants", info.Participants))

		case info.Status == domain.ContractStatusDrawingPending:
			// Committed on-chain by an attempt whose secrets never reached the database
			raffle.Status = domain.RaffleStatusEnded
			logger.ErrorCtx(ctx, errors.New("commitment secrets lost"),
				zap.String("raffleID", raffle.ID),
				zap.String("contractStatus", string(info.Status)))

		default:
			if err := m.commit(ctx, raffle); err != nil {
				return err
			}
			raffle.TotalParticipants = int64(info.Participants)
			jobs = append(jobs, m.revealJob(raffle))
		}

		// The old raffle leaves ACTIVE before its successor enters it
		if err := tx.UpdateRaffle(ctx, raffle); err != nil {
			return storeErr(err)
		}
		if isNew {
			err = tx.CreateRaffle(ctx, successor)
		} else {
			err = tx.UpdateRaffle(ctx, successor)
		}
		if err != nil {
			return storeErr(err)
		}

		final = raffle.Status
		successorID = successor.ID
		jobs = append(jobs, m.endJob(successor))
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Winner selection started",
		zap.String("raffleID", raffleID),
		zap.String("status", string(final)))
	m.invalidate(ctx, raffleID, successorID)

	for _, job := range jobs {
		m.schedule(ctx, job)
	}

	return nil
}

// prepareSuccessor promotes the PENDING successor or deploys a new ACTIVE raffle.
// The returned raffle is not persisted yet.
func (m *manager) prepareSuccessor(ctx context.Context, tx store.Store, raffle *schema.Raffle) (*schema.Raffle, bool, error) {
	var successor *schema.Raffle
	if raffle.NextRaffleID != nil {
		next, err := tx.GetRaffleForUpdate(ctx, *raffle.NextRaffleID)
		if err != nil {
			return nil, false, storeErr(err)
		}
		if next != nil && next.Status == domain.RaffleStatusPending {
			successor = next
		}
	}
	if successor == nil {
		_, pending, err := openRaffles(ctx, tx, raffle.Type)
		if err != nil {
			return nil, false, err
		}
		if pending != nil {
			successor, err = tx.GetRaffleForUpdate(ctx, pending.ID)
			if err != nil {
				return nil, false, storeErr(err)
			}
		}
	}

	if successor != nil {
		if successor.ActivatedAt == nil {
			if err := m.ensureUnpaused(ctx, successor); err != nil {
				return nil, false, err
			}
			now := m.clock.Now()
			successor.ActivatedAt = &now
		}
		if err := m.promote(ctx, successor); err != nil {
			return nil, false, err
		}
		return successor, false, nil
	}

	cfg, err := domain.ConfigFor(raffle.Type)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	successor, err = m.deployActive(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	return successor, true, nil
}

// commit generates the draw secrets and submits their hash on-chain
func (m *manager) commit(ctx context.Context, raffle *schema.Raffle) error {
	c, err := lottery.NewCommitment(m.config.Entropy)
	if err != nil {
		return err
	}

	if err := m.contract.SubmitCommitment(ctx, address(raffle), c.Hash); err != nil {
		return err
	}

	now := m.clock.Now()
	randomValue := c.RandomValue.Hex()
	seed := c.Seed.Hex()
	commitHash := c.Hash.Hex()
	raffle.RandomValue = &randomValue
	raffle.Seed = &seed
	raffle.CommitHash = &commitHash
	raffle.CommittedAt = &now
	raffle.Status = domain.RaffleStatusDrawing

	return nil
}

// deployActive deploys a raffle that opens immediately
func (m *manager) deployActive(ctx context.Context, cfg domain.RaffleTypeConfig) (*schema.Raffle, error) {
	addr, err := m.contract.DeployRaffle(ctx, deployParams(cfg))
	if err != nil {
		return nil, err
	}

	raffle := newRaffle(cfg, addr)
	if err := m.ensureUnpaused(ctx, raffle); err != nil {
		return nil, err
	}

	endTime, err := m.contract.RaffleEndTime(ctx, addr)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	raffle.Status = domain.RaffleStatusActive
	raffle.StartTime = now
	raffle.EndTime = endTime
	raffle.ActivatedAt = &now

	return raffle, nil
}

// deployPending deploys the successor of an ACTIVE raffle
func (m *manager) deployPending(ctx context.Context, cfg domain.RaffleTypeConfig, predecessor *schema.Raffle) (*schema.Raffle, error) {
	addr, err := m.contract.DeployRaffle(ctx, deployParams(cfg))
	if err != nil {
		return nil, err
	}

	raffle := newRaffle(cfg, addr)
	raffle.Status = domain.RaffleStatusPending
	raffle.StartTime = predecessor.EndTime
	raffle.EndTime = predecessor.EndTime.Add(cfg.Duration)

	return raffle, nil
}

// promote marks a raffle ACTIVE with the end time recorded on-chain
func (m *manager) promote(ctx context.Context, raffle *schema.Raffle) error {
	endTime, err := m.contract.RaffleEndTime(ctx, address(raffle))
	if err != nil {
		return err
	}
	raffle.Status = domain.RaffleStatusActive
	raffle.EndTime = endTime
	return nil
}

// ensureUnpaused unpauses the raffle contract unless it already accepts tickets
func (m *manager) ensureUnpaused(ctx context.Context, raffle *schema.Raffle) error {
	paused, err := m.contract.Paused(ctx, address(raffle))
	if err != nil {
		return err
	}
	if !paused {
		return nil
	}
	return m.contract.Unpause(ctx, address(raffle))
}

// lockRaffleWithType takes the type lock before the row lock
func (m *manager) lockRaffleWithType(ctx context.Context, tx store.Store, raffleID string) (*schema.Raffle, error) {
	raffle, err := tx.GetRaffleByID(ctx, raffleID)
	if err != nil {
		return nil, storeErr(err)
	}
	if raffle == nil {
		return nil, fmt.Errorf("%w: raffle %s", domain.ErrNotFound, raffleID)
	}

	if err := tx.LockRaffleType(ctx, raffle.Type); err != nil {
		return nil, storeErr(err)
	}

	return lockRaffle(ctx, tx, raffleID)
}

func (m *manager) endJob(raffle *schema.Raffle) domain.RaffleJob {
	return domain.RaffleJob{Kind: domain.JobKindEnd, RaffleID: raffle.ID, ScheduledAt: raffle.EndTime}
}

func (m *manager) activationJob(raffle *schema.Raffle) domain.RaffleJob {
	return domain.RaffleJob{Kind: domain.JobKindActivate, RaffleID: raffle.ID, ScheduledAt: raffle.StartTime.Add(-m.config.ActivationLead)}
}

func (m *manager) revealJob(raffle *schema.Raffle) domain.RaffleJob {
	return domain.RaffleJob{Kind: domain.JobKindReveal, RaffleID: raffle.ID, ScheduledAt: lottery.EligibleAt(*raffle.CommittedAt, m.config.RevealDelay)}
}

// schedule enqueues a job after commit. Failures are repaired by reconciliation.
func (m *manager) schedule(ctx context.Context, job domain.RaffleJob) {
	if err := m.scheduler.Schedule(ctx, job); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to schedule raffle job"),
			zap.String("key", job.Key()))
	}
}

// invalidate drops the cached views of the given raffles after a committed transition
func (m *manager) invalidate(ctx context.Context, raffleIDs ...string) {
	if err := m.cache.Del(ctx, cache.RaffleKeys(raffleIDs...)...); err != nil {
		logger.WarnCtx(ctx, "Failed to invalidate cached raffle views",
			zap.Strings("raffleIDs", raffleIDs),
			zap.Error(err))
	}
}

func lockRaffle(ctx context.Context, tx store.Store, raffleID string) (*schema.Raffle, error) {
	raffle, err := tx.GetRaffleForUpdate(ctx, raffleID)
	if err != nil {
		return nil, storeErr(err)
	}
	if raffle == nil {
		return nil, fmt.Errorf("%w: raffle %s", domain.ErrNotFound, raffleID)
	}
	return raffle, nil
}

// openRaffles returns the ACTIVE raffle and the earliest PENDING raffle of a type
func openRaffles(ctx context.Context, st store.Store, raffleType domain.RaffleType) (active, pending *schema.Raffle, err error) {
	raffles, err := st.GetOpenRafflesByType(ctx, raffleType)
	if err != nil {
		return nil, nil, storeErr(err)
	}

	for _, r := range raffles {
		switch r.Status {
		case domain.RaffleStatusActive:
			active = r
		case domain.RaffleStatusPending:
			if pending == nil {
				pending = r
			}
		}
	}
	return active, pending, nil
}

func newRaffle(cfg domain.RaffleTypeConfig, addr common.Address) *schema.Raffle {
	return &schema.Raffle{
		ID:                  uuid.NewString(),
		Type:                cfg.Type,
		Address:             domain.NormalizeAddress(addr.Hex()),
		TicketPrice:         cfg.TicketPrice.String(),
		GuaranteedPrizePool: cfg.GuaranteedPrizePool.String(),
		CurrentPrizePool:    "0",
	}
}

func deployParams(cfg domain.RaffleTypeConfig) ethereum.DeployParams {
	return ethereum.DeployParams{
		TicketPrice: cfg.TicketPrice,
		Duration:    cfg.Duration,
		PrizePool:   cfg.GuaranteedPrizePool,
	}
}

func address(raffle *schema.Raffle) common.Address {
	return common.HexToAddress(raffle.Address)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrRemoteCall, err)
}
