package jetstream_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/messaging"
	"github.com/feral-file/ff-raffle/internal/mocks"
	"github.com/feral-file/ff-raffle/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testPublisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

var testConfig = jetstream.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "RAFFLE_EVENTS",
	MaxReconnects:  10,
	ConnectionName: "raffle-api",
}

func (tm *testPublisherMocks) connect(t *testing.T) messaging.Publisher {
	t.Helper()

	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) error {
			assert.Equal(t, "RAFFLE_EVENTS", cfg.Name)
			assert.Equal(t, []string{"raffle.events.>"}, cfg.Subjects)
			assert.Equal(t, jetstream.DefaultDuplicateWindow, cfg.Duplicates)
			return nil
		})

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)
	return pub
}

func TestPublisher_PublishEvent(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tm.ctrl.Finish()

	pub := tm.connect(t)

	event := &domain.RaffleEvent{
		ID:            "01J0000000000000000000000",
		DedupKey:      "3f1c",
		Entity:        domain.EventEntityTicketsBought,
		RaffleAddress: "0x00000000000000000000000000000000000000a1",
	}

	tm.js.EXPECT().Publish(gomock.Any(), "raffle.events.tickets_bought", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			assert.Contains(t, string(data), `"dedup_key":"3f1c"`)
			return &natsjs.PubAck{Stream: "RAFFLE_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, pub.PublishEvent(context.Background(), event))

	tm.conn.EXPECT().Close()
	pub.Close()
}

func TestPublisher_PublishEvent_Failure(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tm.ctrl.Finish()

	pub := tm.connect(t)

	tm.js.EXPECT().Publish(gomock.Any(), "raffle.events.winners_drawn", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("nats: timeout"))

	err := pub.PublishEvent(context.Background(), &domain.RaffleEvent{DedupKey: "k", Entity: domain.EventEntityWinnersDrawn})
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestPublisher_PublishEvent_RequiresDedupKey(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tm.ctrl.Finish()

	pub := tm.connect(t)

	assert.Error(t, pub.PublishEvent(context.Background(), &domain.RaffleEvent{Entity: domain.EventEntityWinnersDrawn}))
}

func TestNewPublisher_StreamFailureClosesConnection(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tm.ctrl.Finish()

	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(errors.New("insufficient resources"))
	tm.conn.EXPECT().Close()

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, tm.natsJS, adapter.NewJSON())
	assert.Error(t, err)
	assert.Nil(t, pub)
}
