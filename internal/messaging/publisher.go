package messaging

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-raffle/internal/domain"
)

// SubjectPrefix prefixes the subjects raffle events are published on
const SubjectPrefix = "raffle.events"

// Subject returns the subject an event entity is published on, e.g. raffle.events.tickets_bought
func Subject(entity domain.EventEntity) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, entity)
}

// SubjectFilter matches every raffle event subject
func SubjectFilter() string {
	return SubjectPrefix + ".>"
}

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a raffle event to the message broker.
	// The broker drops events whose dedup key it has already seen.
	PublishEvent(ctx context.Context, event *domain.RaffleEvent) error
	// Close closes the connection
	Close()
}
