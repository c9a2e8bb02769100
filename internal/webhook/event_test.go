package webhook_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/mocks"
	"github.com/feral-file/ff-raffle/internal/webhook"
)

const ticketsBoughtBody = `{
  "entity": "tickets_bought",
  "data": {
    "new": {
      "raffle_address": "0x00000000000000000000000000000000000000A1",
      "buyer": "0x00000000000000000000000000000000000000b1",
      "number_of_tickets": "3",
      "total_cost": "6000000000000000000",
      "block_number": 1200,
      "transaction_hash": "0x1111111111111111111111111111111111111111111111111111111111111111"
    }
  }
}`

func newBuilder(t *testing.T) (*webhook.EventBuilder, time.Time) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	return webhook.NewEventBuilder(adapter.NewJSON(), adapter.NewJCS(), clock), now
}

func TestEventBuilder_Build(t *testing.T) {
	builder, now := newBuilder(t)

	event, err := builder.Build([]byte(ticketsBoughtBody))
	require.NoError(t, err)

	assert.Equal(t, domain.EventEntityTicketsBought, event.Entity)
	assert.Equal(t, "0x00000000000000000000000000000000000000a1", event.RaffleAddress)
	assert.Equal(t, "0x00000000000000000000000000000000000000b1", event.Buyer)
	assert.Equal(t, int64(3), event.NumberOfTickets)
	assert.Equal(t, uint64(1200), event.BlockNumber)
	assert.Equal(t, now, event.ReceivedAt)
	assert.Len(t, event.DedupKey, 64)

	id, err := ulid.ParseStrict(event.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(now.UnixMilli()), id.Time())
}

func TestEventBuilder_DedupKeyIgnoresFormatting(t *testing.T) {
	builder, _ := newBuilder(t)

	reordered := `{"data":{"new":{"transaction_hash":"0x1111111111111111111111111111111111111111111111111111111111111111",
"block_number":1200,"total_cost":"6000000000000000000","number_of_tickets":"3",
"buyer":"0x00000000000000000000000000000000000000b1",
"raffle_address":"0x00000000000000000000000000000000000000A1"}},"entity":"tickets_bought"}`

	first, err := builder.Build([]byte(ticketsBoughtBody))
	require.NoError(t, err)
	second, err := builder.Build([]byte(reordered))
	require.NoError(t, err)

	assert.Equal(t, first.DedupKey, second.DedupKey)
}

func TestEventBuilder_DedupKeyDiffersPerEntity(t *testing.T) {
	builder, _ := newBuilder(t)

	a, err := builder.DedupKey([]byte(`{"entity":"raffle_created","data":{"new":{"raffle_address":"0x00000000000000000000000000000000000000a1"}}}`))
	require.NoError(t, err)
	b, err := builder.DedupKey([]byte(`{"entity":"winner_selection_initiated","data":{"new":{"raffle_address":"0x00000000000000000000000000000000000000a1"}}}`))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEventBuilder_Build_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `entity=tickets_bought`},
		{name: "unknown entity", body: `{"entity":"raffle_paused","data":{"new":{"raffle_address":"0x00000000000000000000000000000000000000a1"}}}`},
		{name: "bad raffle address", body: `{"entity":"raffle_created","data":{"new":{"raffle_address":"0x12"}}}`},
		{name: "missing snapshot", body: `{"entity":"raffle_created"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, _ := newBuilder(t)

			event, err := builder.Build([]byte(tt.body))
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, event)
		})
	}
}
