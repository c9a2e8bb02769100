package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
)

// rawPayload keeps the row snapshot exactly as delivered for the dedup key
type rawPayload struct {
	Entity string `json:"entity"`
	Data   struct {
		New json.RawMessage `json:"new"`
	} `json:"data"`
}

// EventBuilder turns webhook bodies into raffle events
type EventBuilder struct {
	json  adapter.JSON
	jcs   adapter.JCS
	clock adapter.Clock
}

// NewEventBuilder creates an event builder
func NewEventBuilder(jsonAdapter adapter.JSON, jcs adapter.JCS, clock adapter.Clock) *EventBuilder {
	return &EventBuilder{
		json:  jsonAdapter,
		jcs:   jcs,
		clock: clock,
	}
}

// Build validates a webhook body and returns the event with its ULID and dedup key assigned.
// Malformed bodies return domain.ErrValidation.
func (b *EventBuilder) Build(body []byte) (*domain.RaffleEvent, error) {
	var payload domain.WebhookPayload
	if err := b.json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed webhook body: %v", domain.ErrValidation, err)
	}

	event, err := domain.NewRaffleEvent(payload)
	if err != nil {
		return nil, err
	}

	dedupKey, err := b.DedupKey(body)
	if err != nil {
		return nil, err
	}

	now := b.clock.Now()
	event.ID = ulid.MustNewDefault(now).String()
	event.DedupKey = dedupKey
	event.ReceivedAt = now

	return event, nil
}

// DedupKey returns the hex sha256 of the canonical JSON of {entity, new}.
// Redelivery of the same notification yields the same key whatever its formatting.
func (b *EventBuilder) DedupKey(body []byte) (string, error) {
	var raw rawPayload
	if err := b.json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("%w: malformed webhook body: %v", domain.ErrValidation, err)
	}
	if len(raw.Data.New) == 0 {
		return "", fmt.Errorf("%w: webhook body without data.new", domain.ErrValidation)
	}

	entity, err := b.json.Marshal(raw.Entity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal entity: %w", err)
	}

	doc, err := b.json.Marshal(map[string]json.RawMessage{
		"entity": entity,
		"new":    raw.Data.New,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal dedup document: %w", err)
	}

	canonical, err := b.jcs.Transform(doc)
	if err != nil {
		return "", fmt.Errorf("%w: failed to canonicalize webhook body: %v", domain.ErrValidation, err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
