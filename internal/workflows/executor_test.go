package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/lifecycle"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/mocks"
	"github.com/feral-file/ff-raffle/internal/providers/ethereum"
	"github.com/feral-file/ff-raffle/internal/store/schema"
	"github.com/feral-file/ff-raffle/internal/workflows"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl             *gomock.Controller
	manager          *mocks.MockLifecycleManager
	temporalActivity *mocks.MockActivity
	executor         workflows.Executor
}

// setupTestExecutor creates all the mocks and executor for testing
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)

	tm := &testExecutorMocks{
		ctrl:             ctrl,
		manager:          mocks.NewMockLifecycleManager(ctrl),
		temporalActivity: mocks.NewMockActivity(ctrl),
	}
	tm.executor = workflows.NewExecutor(tm.manager, tm.temporalActivity)

	return tm
}

// tearDownTestExecutor cleans up the test mocks
func tearDownTestExecutor(mocks *testExecutorMocks) {
	mocks.ctrl.Finish()
}

// expectAttempt stubs the activity info consulted when a retryable failure is logged
func (tm *testExecutorMocks) expectAttempt(attempt int32) {
	tm.temporalActivity.EXPECT().GetInfo(gomock.Any()).Return(activity.Info{Attempt: attempt})
}

// applicationError asserts err is a Temporal application error and returns it
func applicationError(t *testing.T, err error) *temporal.ApplicationError {
	t.Helper()
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr), "expected application error, got %v", err)
	return appErr
}

// ====================================================================================
// Job activities
// ====================================================================================

func TestEndRaffle_Success(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().StartWinnerSelection(gomock.Any(), "raffle-1").Return(nil)

	assert.NoError(t, tm.executor.EndRaffle(context.Background(), "raffle-1"))
}

func TestEndRaffle_ConflictingStateIsNoop(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().StartWinnerSelection(gomock.Any(), "raffle-1").
		Return(fmt.Errorf("%w: raffle raffle-1 is DRAWING", domain.ErrConflictingState))

	assert.NoError(t, tm.executor.EndRaffle(context.Background(), "raffle-1"))
}

func TestActivateRaffle_NotFoundIsNonRetryable(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().ActivateRaffle(gomock.Any(), "missing").
		Return(fmt.Errorf("%w: raffle missing", domain.ErrNotFound))

	err := tm.executor.ActivateRaffle(context.Background(), "missing")
	appErr := applicationError(t, err)
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, workflows.ErrorTypeNotFound, appErr.Type())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivateRaffle_ReadOnlyGatewayIsNonRetryable(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().ActivateRaffle(gomock.Any(), "raffle-1").
		Return(fmt.Errorf("failed to unpause raffle: %w", ethereum.ErrReadOnly))

	appErr := applicationError(t, tm.executor.ActivateRaffle(context.Background(), "raffle-1"))
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, workflows.ErrorTypeReadOnly, appErr.Type())
}

func TestRevealRaffle_RemoteFailureIsRetryable(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	remoteErr := fmt.Errorf("%w: receipt timeout", domain.ErrRemoteCall)
	tm.manager.EXPECT().RevealWinners(gomock.Any(), "raffle-1").Return(remoteErr)
	tm.expectAttempt(2)

	err := tm.executor.RevealRaffle(context.Background(), "raffle-1")
	assert.ErrorIs(t, err, domain.ErrRemoteCall)

	var appErr *temporal.ApplicationError
	assert.False(t, errors.As(err, &appErr))
}

func TestRevealRaffle_NotEligibleIsRetryable(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().RevealWinners(gomock.Any(), "raffle-1").Return(domain.ErrRevealNotEligible)
	tm.expectAttempt(1)

	err := tm.executor.RevealRaffle(context.Background(), "raffle-1")
	assert.ErrorIs(t, err, domain.ErrRevealNotEligible)
}

// ====================================================================================
// ProcessRaffleEvent
// ====================================================================================

func TestProcessRaffleEvent_DispatchesByEntity(t *testing.T) {
	tests := []struct {
		entity domain.EventEntity
		expect func(m *mocks.MockLifecycleManager, event *domain.RaffleEvent)
	}{
		{
			entity: domain.EventEntityRaffleCreated,
			expect: func(m *mocks.MockLifecycleManager, event *domain.RaffleEvent) {
				m.EXPECT().ConfirmRaffleDeployment(gomock.Any(), event).Return(nil)
			},
		},
		{
			entity: domain.EventEntityTicketsBought,
			expect: func(m *mocks.MockLifecycleManager, event *domain.RaffleEvent) {
				m.EXPECT().RecordTicketPurchase(gomock.Any(), event).Return(nil)
			},
		},
		{
			entity: domain.EventEntityWinnerSelectionInitiated,
			expect: func(m *mocks.MockLifecycleManager, event *domain.RaffleEvent) {
				m.EXPECT().HandleWinnerSelectionInitiated(gomock.Any(), event).Return(nil)
			},
		},
		{
			entity: domain.EventEntityWinnersDrawn,
			expect: func(m *mocks.MockLifecycleManager, event *domain.RaffleEvent) {
				m.EXPECT().HandleWinnersDrawn(gomock.Any(), event).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			tm := setupTestExecutor(t)
			defer tearDownTestExecutor(tm)

			event := &domain.RaffleEvent{ID: "evt", Entity: tt.entity, RaffleAddress: "0x00000000000000000000000000000000000000a1"}
			tt.expect(tm.manager, event)

			assert.NoError(t, tm.executor.ProcessRaffleEvent(context.Background(), event))
		})
	}
}

func TestProcessRaffleEvent_UnknownEntity(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	err := tm.executor.ProcessRaffleEvent(context.Background(), &domain.RaffleEvent{Entity: "raffle_paused"})
	appErr := applicationError(t, err)
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, workflows.ErrorTypeValidation, appErr.Type())
}

func TestProcessRaffleEvent_NotFoundIsRetried(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	event := &domain.RaffleEvent{Entity: domain.EventEntityRaffleCreated, RaffleAddress: "0x00000000000000000000000000000000000000a1"}
	tm.manager.EXPECT().ConfirmRaffleDeployment(gomock.Any(), event).
		Return(fmt.Errorf("%w: raffle at %s", domain.ErrNotFound, event.RaffleAddress))
	tm.expectAttempt(1)

	err := tm.executor.ProcessRaffleEvent(context.Background(), event)
	appErr := applicationError(t, err)
	assert.False(t, appErr.NonRetryable())
	assert.Equal(t, workflows.ErrorTypeNotFound, appErr.Type())
}

func TestProcessRaffleEvent_ValidationFailure(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	event := &domain.RaffleEvent{Entity: domain.EventEntityWinnersDrawn}
	tm.manager.EXPECT().HandleWinnersDrawn(gomock.Any(), event).
		Return(fmt.Errorf("%w: 2 winners but 1 prizes", domain.ErrValidation))

	appErr := applicationError(t, tm.executor.ProcessRaffleEvent(context.Background(), event))
	assert.True(t, appErr.NonRetryable())
}

// ====================================================================================
// Reconcile and successor activities
// ====================================================================================

func TestReconcileRaffles_InvalidType(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().Reconcile(gomock.Any(), domain.RaffleType("YEARLY")).
		Return(fmt.Errorf("%w: YEARLY", domain.ErrInvalidRaffleType))

	appErr := applicationError(t, tm.executor.ReconcileRaffles(context.Background(), "YEARLY"))
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, workflows.ErrorTypeValidation, appErr.Type())
}

func TestEnsureRaffleSuccessor_Success(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().CreateRaffle(gomock.Any(), domain.RaffleTypeWeekly).
		Return(&schema.Raffle{ID: "next", Type: domain.RaffleTypeWeekly, Status: domain.RaffleStatusPending}, nil)

	assert.NoError(t, tm.executor.EnsureRaffleSuccessor(context.Background(), domain.RaffleTypeWeekly))
}

func TestEnsureRaffleSuccessor_DeployFailure(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.manager.EXPECT().CreateRaffle(gomock.Any(), domain.RaffleTypeDaily).
		Return(nil, fmt.Errorf("failed to deploy raffle: %w", domain.ErrRemoteCall))
	tm.expectAttempt(3)

	assert.ErrorIs(t, tm.executor.EnsureRaffleSuccessor(context.Background(), domain.RaffleTypeDaily), domain.ErrRemoteCall)
}

var _ lifecycle.Manager = (*mocks.MockLifecycleManager)(nil)
