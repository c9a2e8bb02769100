package jetstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/messaging"
)

// DefaultDuplicateWindow is how long the stream remembers message IDs for deduplication
const DefaultDuplicateWindow = 24 * time.Hour

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL             string
	StreamName      string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ConnectionName  string
	DuplicateWindow time.Duration
}

// ConnectOptions returns the connection options shared by the publisher and the bridge
func ConnectOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(fmt.Errorf("disconnected from NATS: %w", err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
}

// NewPublisher connects to NATS and makes sure the raffle event stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ConnectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	window := cfg.DuplicateWindow
	if window <= 0 {
		window = DefaultDuplicateWindow
	}

	err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{messaging.SubjectFilter()},
		Retention:  jetstream.LimitsPolicy,
		Storage:    jetstream.FileStorage,
		Duplicates: window,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
	}, nil
}

// PublishEvent publishes a raffle event to NATS JetStream with its dedup key as message ID
func (p *publisher) PublishEvent(ctx context.Context, event *domain.RaffleEvent) error {
	if event == nil || event.DedupKey == "" {
		return errors.New("event without dedup key")
	}

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := messaging.Subject(event.Entity)

	ack, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.DedupKey))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.DebugCtx(ctx, "Published raffle event",
		zap.String("subject", subject),
		zap.String("eventID", event.ID),
		zap.String("dedupKey", event.DedupKey),
		zap.Bool("duplicate", ack != nil && ack.Duplicate))

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
