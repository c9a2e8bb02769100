package executor_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/api/shared/executor"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/lottery"
	"github.com/feral-file/ff-raffle/internal/mocks"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	"github.com/feral-file/ff-raffle/internal/store/schema"
	"github.com/feral-file/ff-raffle/internal/webhook"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const raffleID = "5f0c3a52-8d1e-4c55-9d7a-1f2b3c4d5e6f"

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testExecutorMocks contains all the mocks needed for testing the API executor
type testExecutorMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	contract  *mocks.MockRaffleContract
	manager   *mocks.MockLifecycleManager
	scheduler *mocks.MockJobScheduler
	publisher *mocks.MockPublisher
	cache     *mocks.MockCache
	clock     *mocks.MockClock
	executor  executor.Executor
}

// setupTestExecutor creates all the mocks and the executor for testing
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)

	tm := &testExecutorMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		contract:  mocks.NewMockRaffleContract(ctrl),
		manager:   mocks.NewMockLifecycleManager(ctrl),
		scheduler: mocks.NewMockJobScheduler(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		cache:     mocks.NewMockCache(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	jsonAdapter := adapter.NewJSON()
	tm.executor = executor.NewExecutor(executor.Deps{
		Store:     tm.store,
		Contract:  tm.contract,
		Manager:   tm.manager,
		Scheduler: tm.scheduler,
		Publisher: tm.publisher,
		Events:    webhook.NewEventBuilder(jsonAdapter, adapter.NewJCS(), tm.clock),
		Cache:     tm.cache,
		Clock:     tm.clock,
		JSON:      jsonAdapter,
	}, executor.CacheTTLs{
		Raffles:      10 * time.Second,
		Raffle:       10 * time.Second,
		Winners:      time.Minute,
		Verification: time.Hour,
	})

	return tm
}

// tearDownTestExecutor cleans up the test mocks
func tearDownTestExecutor(tm *testExecutorMocks) {
	tm.ctrl.Finish()
}

// expectCacheMiss makes the cache miss on key and accept the computed value
func (tm *testExecutorMocks) expectCacheMiss(key string, ttl time.Duration) {
	tm.cache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(false, nil)
	tm.cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), ttl).Return(nil)
}

func apiError(t *testing.T, err error) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr), "expected API error, got %v", err)
	return apiErr
}

func strPtr(s string) *string { return &s }

// ====================================================================================
// Read API
// ====================================================================================

func TestListRaffles(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.expectCacheMiss("raffles:current", 10*time.Second)
	tm.store.EXPECT().GetCurrentRaffles(gomock.Any(), now).Return([]*schema.Raffle{
		{ID: raffleID, Type: domain.RaffleTypeDaily, Status: domain.RaffleStatusActive, TicketPrice: "2000000000000000000", CurrentPrizePool: "0"},
		{ID: "next", Type: domain.RaffleTypeDaily, Status: domain.RaffleStatusPending, TicketPrice: "2000000000000000000", CurrentPrizePool: "0"},
	}, nil)

	resp, err := tm.executor.ListRaffles(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Raffles, 2)
	assert.Equal(t, "ACTIVE", resp.Raffles[0].Status)
	assert.Equal(t, "2", resp.Raffles[0].TicketPrice.Decimal)
	assert.Equal(t, "PENDING", resp.Raffles[1].Status)
}

func TestListRaffles_CacheHit(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.cache.EXPECT().Get(gomock.Any(), "raffles:current", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest interface{}) (bool, error) {
			*(dest.(**dto.RaffleListResponse)) = &dto.RaffleListResponse{Raffles: []dto.RaffleSummary{{ID: "cached"}}}
			return true, nil
		})

	resp, err := tm.executor.ListRaffles(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Raffles, 1)
	assert.Equal(t, "cached", resp.Raffles[0].ID)
}

func TestGetRaffle(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.expectCacheMiss("raffle:"+raffleID, 10*time.Second)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(&schema.Raffle{
		ID:                  raffleID,
		Type:                domain.RaffleTypeWeekly,
		Status:              domain.RaffleStatusCompleted,
		TicketPrice:         "10000000000000000000",
		GuaranteedPrizePool: "500000000000000000000",
		CurrentPrizePool:    "1500000000000000000",
		TotalTickets:        3,
		TotalParticipants:   2,
		IsDrawComplete:      true,
		Winners:             []byte(`{"addresses":["0xaa","0xbb"],"prizes":["400000000000000000000","100000000000000000000"]}`),
		RunnersUp:           []byte(`["0xcc"]`),
		CommitHash:          strPtr("0x01"),
	}, nil)
	tm.store.EXPECT().GetPredecessor(gomock.Any(), raffleID).Return(nil, nil)
	tm.store.EXPECT().GetPrizesByRaffleID(gomock.Any(), raffleID).Return(nil, nil)

	resp, err := tm.executor.GetRaffle(context.Background(), raffleID)
	require.NoError(t, err)

	assert.Equal(t, "1.5", resp.Pricing.CurrentPrizePool.Decimal)
	assert.Equal(t, "500", resp.Pricing.GuaranteedPrizePool.Decimal)
	assert.Equal(t, int64(3), resp.Stats.TotalTickets)
	assert.True(t, resp.Draw.IsComplete)
	require.Len(t, resp.Draw.Winners, 2)
	assert.Equal(t, dto.Winner{Rank: 1, Address: "0xaa", Prize: dto.Amount{Wei: "400000000000000000000", Decimal: "400"}}, resp.Draw.Winners[0])
	assert.Equal(t, []string{"0xcc"}, resp.Draw.RunnersUp)
	assert.Nil(t, resp.PreviousRaffleID)
}

func TestGetRaffle_PrizesAndPredecessor(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.expectCacheMiss("raffle:"+raffleID, 10*time.Second)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(&schema.Raffle{
		ID:               raffleID,
		Status:           domain.RaffleStatusCompleted,
		TicketPrice:      "2000000000000000000",
		CurrentPrizePool: "0",
		IsDrawComplete:   true,
		Winners:          []byte(`{"addresses":["0xstale"],"prizes":["1"]}`),
	}, nil)
	tm.store.EXPECT().GetPredecessor(gomock.Any(), raffleID).Return(&schema.Raffle{ID: "prev"}, nil)
	tm.store.EXPECT().GetPrizesByRaffleID(gomock.Any(), raffleID).Return([]*schema.Prize{
		{Rank: 1, Amount: "7000000000000000000", Winner: schema.User{Address: "0xaa"}},
	}, nil)

	resp, err := tm.executor.GetRaffle(context.Background(), raffleID)
	require.NoError(t, err)

	require.NotNil(t, resp.PreviousRaffleID)
	assert.Equal(t, "prev", *resp.PreviousRaffleID)
	require.Len(t, resp.Draw.Winners, 1)
	assert.Equal(t, dto.Winner{Rank: 1, Address: "0xaa", Prize: dto.Amount{Wei: "7000000000000000000", Decimal: "7"}}, resp.Draw.Winners[0])
}

func TestGetRaffle_OpenRaffleSkipsPrizes(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.expectCacheMiss("raffle:"+raffleID, 10*time.Second)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(&schema.Raffle{
		ID:               raffleID,
		Status:           domain.RaffleStatusActive,
		TicketPrice:      "2000000000000000000",
		CurrentPrizePool: "0",
	}, nil)
	tm.store.EXPECT().GetPredecessor(gomock.Any(), raffleID).Return(nil, nil)

	resp, err := tm.executor.GetRaffle(context.Background(), raffleID)
	require.NoError(t, err)
	assert.Empty(t, resp.Draw.Winners)
}

func TestGetRaffle_NotFound(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.cache.EXPECT().Get(gomock.Any(), "raffle:"+raffleID, gomock.Any()).Return(false, nil)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(nil, nil)

	_, err := tm.executor.GetRaffle(context.Background(), raffleID)
	assert.Equal(t, apierrors.ErrCodeNotFound, apiError(t, err).Code)
}

func TestGetWinners(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	addr := "0x00000000000000000000000000000000000000a1"
	tm.expectCacheMiss("raffle:"+raffleID+":winners", time.Minute)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(&schema.Raffle{ID: raffleID, Address: addr}, nil)
	tm.contract.EXPECT().GetWinners(gomock.Any(), common.HexToAddress(addr)).Return(&ethereum.RaffleWinners{
		Winners:   []common.Address{common.HexToAddress("0x00000000000000000000000000000000000000B1")},
		Prizes:    []*big.Int{big.NewInt(1e18)},
		RunnersUp: []common.Address{common.HexToAddress("0x00000000000000000000000000000000000000c1")},
	}, nil)

	resp, err := tm.executor.GetWinners(context.Background(), raffleID)
	require.NoError(t, err)
	require.Len(t, resp.Winners, 1)
	assert.Equal(t, "0x00000000000000000000000000000000000000b1", resp.Winners[0].Address)
	assert.Equal(t, "1", resp.Winners[0].Prize.Decimal)
	assert.Equal(t, []string{"0x00000000000000000000000000000000000000c1"}, resp.RunnersUp)
}

func TestGetWinners_ContractFailure(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(&schema.Raffle{ID: raffleID, Address: "0xa1"}, nil)
	tm.contract.EXPECT().GetWinners(gomock.Any(), gomock.Any()).Return(nil, errors.New("execution reverted"))

	_, err := tm.executor.GetWinners(context.Background(), raffleID)
	assert.Equal(t, apierrors.ErrCodeServiceError, apiError(t, err).Code)
}

// ====================================================================================
// Verification
// ====================================================================================

func completedRaffle(t *testing.T, owners []common.Address, counts []uint64) (*schema.Raffle, []*schema.Ticket) {
	t.Helper()

	randomValue := common.HexToHash("0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	seed := common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222")
	commit := lottery.CommitHash(randomValue, seed)

	var purchases []lottery.Purchase
	var tickets []*schema.Ticket
	var total uint64
	for i, o := range owners {
		purchases = append(purchases, lottery.Purchase{Buyer: o, Count: counts[i]})
		tickets = append(tickets, &schema.Ticket{Count: int64(counts[i]), Buyer: schema.User{Address: domain.NormalizeAddress(o.Hex())}})
		total += counts[i]
	}
	ledger := lottery.NewTicketLedger(purchases)

	draw, err := lottery.DeriveWinners(context.Background(), randomValue, total, min(domain.WinnerCount, ledger.Participants()), ledger)
	require.NoError(t, err)

	winners := make([]string, len(draw.Winners))
	for i, w := range draw.Winners {
		winners[i] = fmt.Sprintf(`"%s"`, domain.NormalizeAddress(w.Hex()))
	}
	winnersJSON := fmt.Sprintf(`{"addresses":[%s],"prizes":[]}`, strings.Join(winners, ","))

	return &schema.Raffle{
		ID:           raffleID,
		Status:       domain.RaffleStatusCompleted,
		TotalTickets: int64(total),
		RandomValue:  strPtr(randomValue.Hex()),
		Seed:         strPtr(seed.Hex()),
		CommitHash:   strPtr(commit.Hex()),
		Winners:      []byte(winnersJSON),
	}, tickets
}

func TestGetVerification(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	owners := []common.Address{
		common.HexToAddress("0x00000000000000000000000000000000000000b1"),
		common.HexToAddress("0x00000000000000000000000000000000000000b2"),
		common.HexToAddress("0x00000000000000000000000000000000000000b3"),
	}
	raffle, tickets := completedRaffle(t, owners, []uint64{2, 4, 1})

	tm.expectCacheMiss("raffle:"+raffleID+":verification", time.Hour)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(raffle, nil)
	tm.store.EXPECT().GetTicketsByRaffleID(gomock.Any(), raffleID).Return(tickets, nil)

	resp, err := tm.executor.GetVerification(context.Background(), raffleID)
	require.NoError(t, err)
	assert.True(t, resp.CommitmentValid)
	assert.True(t, resp.WinnersMatch)
	assert.Len(t, resp.DerivedWinners, 3)
	assert.Equal(t, resp.RecordedWinners, resp.DerivedWinners)

	// The draw secrets stay server-side
	data, err := adapter.NewJSON().Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"random_value"`)
	assert.NotContains(t, string(data), `"seed"`)
	assert.NotContains(t, string(data), strings.TrimPrefix(*raffle.RandomValue, "0x"))
	assert.NotContains(t, string(data), strings.TrimPrefix(*raffle.Seed, "0x"))
}

func TestGetVerification_TamperedWinners(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	owners := []common.Address{
		common.HexToAddress("0x00000000000000000000000000000000000000b1"),
		common.HexToAddress("0x00000000000000000000000000000000000000b2"),
	}
	raffle, tickets := completedRaffle(t, owners, []uint64{1, 1})
	raffle.Winners = []byte(`{"addresses":["0x00000000000000000000000000000000000000ff","0x00000000000000000000000000000000000000b1"],"prizes":[]}`)

	tm.expectCacheMiss("raffle:"+raffleID+":verification", time.Hour)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).Return(raffle, nil)
	tm.store.EXPECT().GetTicketsByRaffleID(gomock.Any(), raffleID).Return(tickets, nil)

	resp, err := tm.executor.GetVerification(context.Background(), raffleID)
	require.NoError(t, err)
	assert.True(t, resp.CommitmentValid)
	assert.False(t, resp.WinnersMatch)
}

func TestGetVerification_NotCompleted(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), raffleID).
		Return(&schema.Raffle{ID: raffleID, Status: domain.RaffleStatusDrawing}, nil)

	_, err := tm.executor.GetVerification(context.Background(), raffleID)
	assert.Equal(t, apierrors.ErrCodeConflict, apiError(t, err).Code)
}

// ====================================================================================
// Webhook ingestion and admin triggers
// ====================================================================================

const ticketsBoughtBody = `{
  "entity": "tickets_bought",
  "data": {
    "new": {
      "raffle_address": "0x00000000000000000000000000000000000000a1",
      "buyer": "0x00000000000000000000000000000000000000b1",
      "number_of_tickets": "2",
      "total_cost": "4000000000000000000",
      "block_number": 77,
      "transaction_hash": "0x1111111111111111111111111111111111111111111111111111111111111111"
    }
  }
}`

func TestIngestWebhook(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	var published *domain.RaffleEvent
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.RaffleEvent) error {
			published = event
			return nil
		})

	resp, err := tm.executor.IngestWebhook(context.Background(), []byte(ticketsBoughtBody))
	require.NoError(t, err)

	require.NotNil(t, published)
	assert.Equal(t, domain.EventEntityTicketsBought, published.Entity)
	assert.Equal(t, published.ID, resp.EventID)
	assert.Equal(t, published.DedupKey, resp.DedupKey)
	assert.Equal(t, int64(2), published.NumberOfTickets)
}

func TestIngestWebhook_InvalidPayload(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	_, err := tm.executor.IngestWebhook(context.Background(), []byte(`{"entity":"raffle_paused","data":{"new":{}}}`))
	assert.Equal(t, apierrors.ErrCodeValidationFailed, apiError(t, err).Code)
}

func TestIngestWebhook_PublishFailure(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats: timeout"))

	_, err := tm.executor.IngestWebhook(context.Background(), []byte(ticketsBoughtBody))
	apiErr := apiError(t, err)
	assert.Equal(t, apierrors.ErrCodeServiceUnavailable, apiErr.Code)
	assert.Equal(t, 503, apiErr.StatusCode())
}

func TestTriggerReconcile(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.scheduler.EXPECT().ScheduleReconcile(gomock.Any(), domain.RaffleTypeMonthly).Return(nil)

	resp, err := tm.executor.TriggerReconcile(context.Background(), "monthly")
	require.NoError(t, err)
	assert.Equal(t, "MONTHLY", resp.RaffleType)
	assert.Equal(t, "raffle-reconcile-MONTHLY", resp.WorkflowID)
}

func TestTriggerReconcile_InvalidType(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	_, err := tm.executor.TriggerReconcile(context.Background(), "YEARLY")
	assert.Equal(t, apierrors.ErrCodeValidationFailed, apiError(t, err).Code)
}

func TestReissueJob(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	job := &domain.RaffleJob{Kind: domain.JobKindEnd, RaffleID: raffleID, ScheduledAt: now.Add(time.Hour)}
	tm.manager.EXPECT().RescheduleJob(gomock.Any(), raffleID, domain.JobKindEnd).Return(job, nil)

	resp, err := tm.executor.ReissueJob(context.Background(), raffleID, "end")
	require.NoError(t, err)
	assert.Equal(t, "raffle-end-"+raffleID, resp.Key)
	assert.Equal(t, now.Add(time.Hour), resp.ScheduledAt)
}

func TestReissueJob_ConflictingState(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().RescheduleJob(gomock.Any(), raffleID, domain.JobKindReveal).
		Return(nil, fmt.Errorf("%w: raffle is ACTIVE", domain.ErrConflictingState))

	_, err := tm.executor.ReissueJob(context.Background(), raffleID, "reveal")
	assert.Equal(t, 409, apiError(t, err).StatusCode())
}
