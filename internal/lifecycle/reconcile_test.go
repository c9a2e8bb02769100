package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/store/schema"
)

func TestManager_Reconcile_InvalidType(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)

	err := tm.manager.Reconcile(context.Background(), domain.RaffleType("YEARLY"))
	assert.ErrorIs(t, err, domain.ErrInvalidRaffleType)
}

func TestManager_Reconcile_ReissuesJobs(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)

	active := testRaffle("a", domain.RaffleStatusActive, addrA)
	pending := testRaffle("b", domain.RaffleStatusPending, addrB)
	pending.StartTime = active.EndTime
	drawing := drawingRaffle(testNow.Add(-2 * time.Minute))
	drawing.ID = "d"
	weekly := drawingRaffle(testNow.Add(-2 * time.Minute))
	weekly.ID = "w"
	weekly.Type = domain.RaffleTypeWeekly

	tm.store.EXPECT().GetOpenRafflesByType(gomock.Any(), domain.RaffleTypeDaily).
		Return([]*schema.Raffle{active, pending}, nil).Times(2)
	tm.store.EXPECT().GetRafflesByStatus(gomock.Any(), domain.RaffleStatusDrawing).
		Return([]*schema.Raffle{drawing, weekly}, nil)

	tm.scheduler.EXPECT().Schedule(gomock.Any(), domain.RaffleJob{
		Kind: domain.JobKindEnd, RaffleID: "a", ScheduledAt: active.EndTime,
	}).Return(nil)
	tm.scheduler.EXPECT().Schedule(gomock.Any(), domain.RaffleJob{
		Kind: domain.JobKindActivate, RaffleID: "b", ScheduledAt: pending.StartTime.Add(-30 * time.Minute),
	}).Return(nil)
	tm.scheduler.EXPECT().Schedule(gomock.Any(), domain.RaffleJob{
		Kind: domain.JobKindReveal, RaffleID: "d", ScheduledAt: testNow.Add(3 * time.Minute),
	}).Return(nil)

	require.NoError(t, tm.manager.Reconcile(context.Background(), domain.RaffleTypeDaily))
}

func TestManager_Reconcile_PromotesUnpausedPending(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)
	tm.captureWrites()

	pending := testRaffle("b", domain.RaffleStatusPending, addrB)
	endTime := testNow.Add(4 * time.Minute)

	tm.store.EXPECT().GetOpenRafflesByType(gomock.Any(), domain.RaffleTypeDaily).
		Return([]*schema.Raffle{pending}, nil).Times(3)
	tm.contract.EXPECT().Paused(gomock.Any(), common.HexToAddress(addrB)).Return(false, nil)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), "b").Return(pending, nil)
	tm.store.EXPECT().LockRaffleType(gomock.Any(), domain.RaffleTypeDaily).Return(nil)
	tm.store.EXPECT().GetRaffleForUpdate(gomock.Any(), "b").Return(pending, nil)
	tm.contract.EXPECT().RaffleEndTime(gomock.Any(), common.HexToAddress(addrB)).Return(endTime, nil)

	tm.store.EXPECT().GetRafflesByStatus(gomock.Any(), domain.RaffleStatusDrawing).Return(nil, nil)
	tm.scheduler.EXPECT().Schedule(gomock.Any(), domain.RaffleJob{
		Kind: domain.JobKindEnd, RaffleID: "b", ScheduledAt: endTime,
	}).Return(nil)

	require.NoError(t, tm.manager.Reconcile(context.Background(), domain.RaffleTypeDaily))

	require.Len(t, tm.saved, 1)
	assert.Equal(t, domain.RaffleStatusActive, tm.saved[0].Status)
	require.NotNil(t, tm.saved[0].ActivatedAt)
}

func TestManager_Reconcile_PausedPendingWaitsForActivation(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)

	pending := testRaffle("b", domain.RaffleStatusPending, addrB)

	tm.store.EXPECT().GetOpenRafflesByType(gomock.Any(), domain.RaffleTypeDaily).
		Return([]*schema.Raffle{pending}, nil).Times(2)
	tm.contract.EXPECT().Paused(gomock.Any(), common.HexToAddress(addrB)).Return(true, nil)
	tm.store.EXPECT().GetRafflesByStatus(gomock.Any(), domain.RaffleStatusDrawing).Return(nil, nil)
	tm.scheduler.EXPECT().Schedule(gomock.Any(), domain.RaffleJob{
		Kind: domain.JobKindActivate, RaffleID: "b", ScheduledAt: pending.StartTime.Add(-30 * time.Minute),
	}).Return(nil)

	require.NoError(t, tm.manager.Reconcile(context.Background(), domain.RaffleTypeDaily))
}

func TestManager_RescheduleJob(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)

	active := testRaffle("a", domain.RaffleStatusActive, addrA)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), "a").Return(active, nil)
	tm.scheduler.EXPECT().Schedule(gomock.Any(), domain.RaffleJob{
		Kind: domain.JobKindEnd, RaffleID: "a", ScheduledAt: active.EndTime,
	}).Return(nil)

	job, err := tm.manager.RescheduleJob(context.Background(), "a", domain.JobKindEnd)
	require.NoError(t, err)
	assert.Equal(t, "raffle-end-a", job.Key())
}

func TestManager_RescheduleJob_WrongKind(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)

	active := testRaffle("a", domain.RaffleStatusActive, addrA)
	tm.store.EXPECT().GetRaffleByID(gomock.Any(), "a").Return(active, nil)

	_, err := tm.manager.RescheduleJob(context.Background(), "a", domain.JobKindReveal)
	assert.ErrorIs(t, err, domain.ErrConflictingState)
}

func TestManager_RescheduleJob_UnknownKind(t *testing.T) {
	tm := setupTestManager(t)
	defer tearDownTestManager(tm)

	_, err := tm.manager.RescheduleJob(context.Background(), "a", domain.JobKind("payout"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
