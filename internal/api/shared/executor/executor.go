package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/cache"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/lifecycle"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/lottery"
	"github.com/feral-file/ff-raffle/internal/messaging"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	"github.com/feral-file/ff-raffle/internal/scheduler"
	"github.com/feral-file/ff-raffle/internal/store"
	"github.com/feral-file/ff-raffle/internal/store/schema"
	"github.com/feral-file/ff-raffle/internal/webhook"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ListRaffles retrieves the ACTIVE raffles that have not ended and the PENDING raffles
	ListRaffles(ctx context.Context) (*dto.RaffleListResponse, error)

	// GetRaffle retrieves the detailed view of a raffle
	GetRaffle(ctx context.Context, raffleID string) (*dto.RaffleResponse, error)

	// GetWinners retrieves the winners recorded by the raffle contract
	GetWinners(ctx context.Context, raffleID string) (*dto.WinnersResponse, error)

	// GetVerification re-derives the winners of a completed raffle from the recorded tickets
	GetVerification(ctx context.Context, raffleID string) (*dto.VerificationResponse, error)

	// IngestWebhook validates an indexer notification and publishes it for the workers
	IngestWebhook(ctx context.Context, body []byte) (*dto.WebhookAcceptedResponse, error)

	// TriggerReconcile starts a reconciliation of the raffles of a type
	TriggerReconcile(ctx context.Context, raffleType string) (*dto.TriggerReconcileResponse, error)

	// ReissueJob re-issues the pending job of a raffle
	ReissueJob(ctx context.Context, raffleID string, kind string) (*dto.ReissueJobResponse, error)
}

// CacheTTLs holds the lifetime of each cached read model
type CacheTTLs struct {
	Raffles      time.Duration
	Raffle       time.Duration
	Winners      time.Duration
	Verification time.Duration
}

// Deps holds the collaborators of the executor
type Deps struct {
	Store     store.Store
	Contract  ethereum.RaffleContract
	Manager   lifecycle.Manager
	Scheduler scheduler.JobScheduler
	Publisher messaging.Publisher
	Events    *webhook.EventBuilder
	Cache     cache.Cache
	Clock     adapter.Clock
	JSON      adapter.JSON
}

type executor struct {
	Deps
	ttl CacheTTLs
}

// NewExecutor creates a new API executor
func NewExecutor(deps Deps, ttl CacheTTLs) Executor {
	return &executor{Deps: deps, ttl: ttl}
}

func (e *executor) ListRaffles(ctx context.Context) (*dto.RaffleListResponse, error) {
	return cache.Remember(ctx, e.Cache, cache.CurrentRafflesKey, e.ttl.Raffles,
		func(ctx context.Context) (*dto.RaffleListResponse, error) {
			raffles, err := e.Store.GetCurrentRaffles(ctx, e.Clock.Now())
			if err != nil {
				return nil, apierrors.NewDatabaseError("Failed to get raffles", err.Error())
			}

			resp := &dto.RaffleListResponse{Raffles: make([]dto.RaffleSummary, len(raffles))}
			for i, r := range raffles {
				resp.Raffles[i] = dto.MapRaffleToSummary(r)
			}
			return resp, nil
		})
}

func (e *executor) GetRaffle(ctx context.Context, raffleID string) (*dto.RaffleResponse, error) {
	return cache.Remember(ctx, e.Cache, cache.RaffleKey(raffleID), e.ttl.Raffle,
		func(ctx context.Context) (*dto.RaffleResponse, error) {
			raffle, err := e.getRaffle(ctx, raffleID)
			if err != nil {
				return nil, err
			}

			predecessor, err := e.Store.GetPredecessor(ctx, raffle.ID)
			if err != nil {
				return nil, apierrors.NewDatabaseError("Failed to get previous raffle", err.Error())
			}

			winners, err := e.drawWinners(ctx, raffle)
			if err != nil {
				return nil, err
			}

			var runnersUp []string
			if len(raffle.RunnersUp) > 0 {
				if err := e.JSON.Unmarshal(raffle.RunnersUp, &runnersUp); err != nil {
					return nil, apierrors.NewInternalError("Failed to decode runners-up", err.Error())
				}
			}

			return dto.MapRaffleToDTO(raffle, predecessor, winners, runnersUp), nil
		})
}

func (e *executor) GetWinners(ctx context.Context, raffleID string) (*dto.WinnersResponse, error) {
	return cache.Remember(ctx, e.Cache, cache.WinnersKey(raffleID), e.ttl.Winners,
		func(ctx context.Context) (*dto.WinnersResponse, error) {
			raffle, err := e.getRaffle(ctx, raffleID)
			if err != nil {
				return nil, err
			}

			onchain, err := e.Contract.GetWinners(ctx, common.HexToAddress(raffle.Address))
			if err != nil {
				return nil, apierrors.NewServiceError("Failed to get winners from contract", err.Error())
			}

			addresses := make([]string, len(onchain.Winners))
			for i, w := range onchain.Winners {
				addresses[i] = domain.NormalizeAddress(w.Hex())
			}
			prizes := make([]string, len(onchain.Prizes))
			for i, p := range onchain.Prizes {
				prizes[i] = p.String()
			}
			runnersUp := make([]string, len(onchain.RunnersUp))
			for i, r := range onchain.RunnersUp {
				runnersUp[i] = domain.NormalizeAddress(r.Hex())
			}

			return &dto.WinnersResponse{
				RaffleID:  raffle.ID,
				Address:   raffle.Address,
				Winners:   dto.MapWinners(addresses, prizes),
				RunnersUp: runnersUp,
			}, nil
		})
}

func (e *executor) GetVerification(ctx context.Context, raffleID string) (*dto.VerificationResponse, error) {
	return cache.Remember(ctx, e.Cache, cache.VerificationKey(raffleID), e.ttl.Verification,
		func(ctx context.Context) (*dto.VerificationResponse, error) {
			raffle, err := e.getRaffle(ctx, raffleID)
			if err != nil {
				return nil, err
			}

			if raffle.Status != domain.RaffleStatusCompleted ||
				raffle.RandomValue == nil || raffle.Seed == nil || raffle.CommitHash == nil {
				return nil, apierrors.NewConflictError("Raffle draw is not complete",
					fmt.Sprintf("raffle %s is %s", raffle.ID, raffle.Status))
			}

			winners, err := e.decodeWinners(raffle)
			if err != nil {
				return nil, err
			}
			var recorded []common.Address
			var recordedStr []string
			if winners != nil {
				recordedStr = winners.Addresses
				for _, w := range winners.Addresses {
					recorded = append(recorded, common.HexToAddress(w))
				}
			}

			tickets, err := e.Store.GetTicketsByRaffleID(ctx, raffle.ID)
			if err != nil {
				return nil, apierrors.NewDatabaseError("Failed to get tickets", err.Error())
			}
			purchases := make([]lottery.Purchase, 0, len(tickets))
			for _, t := range tickets {
				purchases = append(purchases, lottery.Purchase{
					Buyer: common.HexToAddress(t.Buyer.Address),
					Count: uint64(t.Count), //nolint:gosec,G115
				})
			}
			ledger := lottery.NewTicketLedger(purchases)

			n := min(domain.WinnerCount, ledger.Participants())
			if n == 0 {
				return nil, apierrors.NewConflictError("Raffle has no recorded tickets", raffle.ID)
			}

			v, err := lottery.Verify(ctx,
				common.HexToHash(*raffle.RandomValue),
				common.HexToHash(*raffle.Seed),
				common.HexToHash(*raffle.CommitHash),
				uint64(raffle.TotalTickets), //nolint:gosec,G115
				n, ledger, recorded)
			if err != nil {
				if errors.Is(err, lottery.ErrIndexOutOfRange) {
					return nil, apierrors.NewConflictError("Ticket ledger is incomplete", err.Error())
				}
				return nil, apierrors.NewInternalError("Failed to verify draw", err.Error())
			}

			derived := make([]string, len(v.Derived))
			for i, w := range v.Derived {
				derived[i] = domain.NormalizeAddress(w.Hex())
			}
			if recordedStr == nil {
				recordedStr = []string{}
			}

			return &dto.VerificationResponse{
				RaffleID:        raffle.ID,
				CommitHash:      *raffle.CommitHash,
				TotalTickets:    raffle.TotalTickets,
				CommitmentValid: v.CommitmentValid,
				WinnersMatch:    v.WinnersMatch,
				RecordedWinners: recordedStr,
				DerivedWinners:  derived,
			}, nil
		})
}

func (e *executor) IngestWebhook(ctx context.Context, body []byte) (*dto.WebhookAcceptedResponse, error) {
	event, err := e.Events.Build(body)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Invalid webhook payload")
	}

	if err := e.Publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish raffle event: %w", err),
			zap.String("entity", string(event.Entity)),
			zap.String("dedupKey", event.DedupKey))
		return nil, apierrors.NewServiceUnavailableError("Failed to queue event", err.Error())
	}

	logger.InfoCtx(ctx, "Webhook event accepted",
		zap.String("eventID", event.ID),
		zap.String("entity", string(event.Entity)),
		zap.String("raffleAddress", event.RaffleAddress))

	return &dto.WebhookAcceptedResponse{
		EventID:  event.ID,
		DedupKey: event.DedupKey,
	}, nil
}

func (e *executor) TriggerReconcile(ctx context.Context, raffleType string) (*dto.TriggerReconcileResponse, error) {
	t, err := domain.ParseRaffleType(raffleType)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Invalid raffle type")
	}

	if err := e.Scheduler.ScheduleReconcile(ctx, t); err != nil {
		return nil, apierrors.NewServiceError("Failed to start reconciliation", err.Error())
	}

	return &dto.TriggerReconcileResponse{
		RaffleType: string(t),
		WorkflowID: scheduler.ReconcileWorkflowID(t),
	}, nil
}

func (e *executor) ReissueJob(ctx context.Context, raffleID string, kind string) (*dto.ReissueJobResponse, error) {
	job, err := e.Manager.RescheduleJob(ctx, raffleID, domain.JobKind(kind))
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to re-issue job")
	}

	return &dto.ReissueJobResponse{
		Key:         job.Key(),
		Kind:        string(job.Kind),
		RaffleID:    job.RaffleID,
		ScheduledAt: job.ScheduledAt,
	}, nil
}

// getRaffle loads a raffle or returns a not found API error
func (e *executor) getRaffle(ctx context.Context, raffleID string) (*schema.Raffle, error) {
	raffle, err := e.Store.GetRaffleByID(ctx, raffleID)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to get raffle", err.Error())
	}
	if raffle == nil {
		return nil, apierrors.NewNotFoundError("Raffle not found", raffleID)
	}
	return raffle, nil
}

// drawWinners reads the persisted prizes of a completed raffle, falling back to the winners column
func (e *executor) drawWinners(ctx context.Context, raffle *schema.Raffle) ([]dto.Winner, error) {
	if !raffle.IsDrawComplete {
		return nil, nil
	}

	prizes, err := e.Store.GetPrizesByRaffleID(ctx, raffle.ID)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to get prizes", err.Error())
	}
	if len(prizes) > 0 {
		return dto.MapPrizes(prizes), nil
	}

	winners, err := e.decodeWinners(raffle)
	if err != nil || winners == nil {
		return nil, err
	}
	return dto.MapWinners(winners.Addresses, winners.Prizes), nil
}

func (e *executor) decodeWinners(raffle *schema.Raffle) (*schema.RaffleWinners, error) {
	if len(raffle.Winners) == 0 {
		return nil, nil
	}

	var winners schema.RaffleWinners
	if err := e.JSON.Unmarshal(raffle.Winners, &winners); err != nil {
		return nil, apierrors.NewInternalError("Failed to decode winners", err.Error())
	}
	return &winners, nil
}
