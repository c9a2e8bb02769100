package bridge_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/bridge"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	mockspkg "github.com/feral-file/ff-raffle/internal/mocks"
	"github.com/feral-file/ff-raffle/internal/scheduler"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBridgeMocks contains all the mocks needed for testing the bridge
type testBridgeMocks struct {
	ctrl         *gomock.Controller
	natsJS       *mockspkg.MockNatsJetStream
	natsConn     *mockspkg.MockNatsConn
	jetStream    *mockspkg.MockJetStream
	consumer     *mockspkg.MockNatsConsumer
	consumeCtx   *mockspkg.MockConsumeContext
	orchestrator *mockspkg.MockTemporalOrchestrator
}

// setupTestBridge creates all the mocks and bridge for testing
func setupTestBridge(t *testing.T) *testBridgeMocks {
	ctrl := gomock.NewController(t)

	return &testBridgeMocks{
		ctrl:         ctrl,
		natsJS:       mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:     mockspkg.NewMockNatsConn(ctrl),
		jetStream:    mockspkg.NewMockJetStream(ctrl),
		consumer:     mockspkg.NewMockNatsConsumer(ctrl),
		consumeCtx:   mockspkg.NewMockConsumeContext(ctrl),
		orchestrator: mockspkg.NewMockTemporalOrchestrator(ctrl),
	}
}

// tearDownTestBridge cleans up the test mocks
func tearDownTestBridge(mocks *testBridgeMocks) {
	mocks.ctrl.Finish()
}

var testConfig = bridge.Config{
	URL:               "nats://localhost:4222",
	StreamName:        "RAFFLE_EVENTS",
	ConsumerName:      "raffle-event-bridge",
	MaxReconnects:     10,
	ReconnectWait:     1 * time.Second,
	ConnectionName:    "test-bridge",
	AckWaitTimeout:    30 * time.Second,
	MaxDeliver:        5,
	TemporalTaskQueue: "raffle-lifecycle",
	Concurrency:       2,
}

const ticketsBoughtMessage = `{
  "id": "01J0000000000000000000000",
  "dedup_key": "9a4f",
  "entity": "tickets_bought",
  "raffle_address": "0x00000000000000000000000000000000000000a1",
  "buyer": "0x00000000000000000000000000000000000000b1",
  "number_of_tickets": 2,
  "total_cost": "4000000000000000000",
  "transaction_hash": "0x1111111111111111111111111111111111111111111111111111111111111111",
  "received_at": "2026-03-01T12:00:00Z"
}`

func (tm *testBridgeMocks) newBridge(t *testing.T) bridge.Bridge {
	t.Helper()

	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.natsConn, tm.jetStream, nil)

	b, err := bridge.NewBridge(testConfig, tm.natsJS, tm.orchestrator, adapter.NewJSON())
	require.NoError(t, err)
	return b
}

// expectDelivery stubs a consumer that delivers one message and then cancels the returned context
func (tm *testBridgeMocks) expectDelivery(t *testing.T, data string) (context.Context, *mockspkg.MockJetStreamMessage) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	msg := mockspkg.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte(data)).AnyTimes()
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).AnyTimes()

	tm.jetStream.EXPECT().CreateOrUpdateConsumer(gomock.Any(), "RAFFLE_EVENTS", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cfg jetstream.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "raffle-event-bridge", cfg.Durable)
			assert.Equal(t, "raffle.events.>", cfg.FilterSubject)
			assert.Equal(t, jetstream.AckExplicitPolicy, cfg.AckPolicy)
			assert.Equal(t, 5, cfg.MaxDeliver)
			return tm.consumer, nil
		})
	tm.consumer.EXPECT().Info(gomock.Any()).Return(&jetstream.ConsumerInfo{Name: "raffle-event-bridge"}, nil)
	tm.consumer.EXPECT().Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, _ ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			go func() {
				handler(msg)
				cancel()
			}()
			return tm.consumeCtx, nil
		})
	tm.consumeCtx.EXPECT().Stop()

	return ctx, msg
}

func TestBridge_NewBridge_ConnectError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	b, err := bridge.NewBridge(testConfig, mocks.natsJS, mocks.orchestrator, adapter.NewJSON())

	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestBridge_Run_ForwardsEvent(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	b := mocks.newBridge(t)

	mocks.orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), scheduler.WorkflowProcessRaffleEvent, gomock.Any()).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "raffle-event-tickets_bought-9a4f", opts.ID)
			assert.Equal(t, "raffle-lifecycle", opts.TaskQueue)
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY, opts.WorkflowIDReusePolicy)

			require.Len(t, args, 1)
			event, ok := args[0].(*domain.RaffleEvent)
			require.True(t, ok)
			assert.Equal(t, int64(2), event.NumberOfTickets)
			assert.Equal(t, "0x00000000000000000000000000000000000000b1", event.Buyer)
			return nil, nil
		})

	ctx, msg := mocks.expectDelivery(t, ticketsBoughtMessage)
	msg.EXPECT().Ack().Return(nil)

	require.NoError(t, b.Run(ctx))
}

func TestBridge_Run_AlreadyForwarded(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	b := mocks.newBridge(t)

	mocks.orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), scheduler.WorkflowProcessRaffleEvent, gomock.Any()).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-1"))

	ctx, msg := mocks.expectDelivery(t, ticketsBoughtMessage)
	msg.EXPECT().Ack().Return(nil)

	require.NoError(t, b.Run(ctx))
}

func TestBridge_Run_ForwardFailureNaks(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	b := mocks.newBridge(t)

	mocks.orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), scheduler.WorkflowProcessRaffleEvent, gomock.Any()).
		Return(nil, errors.New("temporal unavailable"))

	ctx, msg := mocks.expectDelivery(t, ticketsBoughtMessage)
	msg.EXPECT().Nak().Return(nil)

	require.NoError(t, b.Run(ctx))
}

func TestBridge_Run_UnparseableTerminates(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `not-json`},
		{name: "unknown entity", data: `{"entity":"raffle_paused","dedup_key":"k"}`},
		{name: "missing dedup key", data: `{"entity":"tickets_bought"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestBridge(t)
			defer tearDownTestBridge(mocks)

			b := mocks.newBridge(t)

			ctx, msg := mocks.expectDelivery(t, tt.data)
			msg.EXPECT().Term().Return(nil)

			require.NoError(t, b.Run(ctx))
		})
	}
}

func TestBridge_Run_ConsumerError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	b := mocks.newBridge(t)

	mocks.jetStream.EXPECT().CreateOrUpdateConsumer(gomock.Any(), "RAFFLE_EVENTS", gomock.Any()).
		Return(nil, errors.New("stream not found"))

	err := b.Run(context.Background())
	assert.ErrorContains(t, err, "failed to create/update consumer")
}

func TestBridge_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	b := mocks.newBridge(t)

	mocks.natsConn.EXPECT().Close()
	b.Close()
}

func TestWorkflowID(t *testing.T) {
	event := &domain.RaffleEvent{Entity: domain.EventEntityWinnersDrawn, DedupKey: "abc"}
	assert.Equal(t, "raffle-event-winners_drawn-abc", bridge.WorkflowID(event))
}
