package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go/jetstream"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/messaging"
	natsjs "github.com/feral-file/ff-raffle/internal/providers/jetstream"
	"github.com/feral-file/ff-raffle/internal/providers/temporal"
	"github.com/feral-file/ff-raffle/internal/scheduler"
)

// DefaultConcurrency is the number of messages forwarded in parallel
const DefaultConcurrency = 16

// Config holds the configuration for the event bridge
type Config struct {
	URL               string
	StreamName        string
	ConsumerName      string
	MaxReconnects     int
	ReconnectWait     time.Duration
	ConnectionName    string
	AckWaitTimeout    time.Duration
	MaxDeliver        int
	TemporalTaskQueue string
	Concurrency       int
}

// Bridge forwards raffle events from JetStream to the core worker
type Bridge interface {
	// Run consumes events until ctx is cancelled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc           adapter.NatsConn
	js           adapter.JetStream
	orchestrator temporal.TemporalOrchestrator
	json         adapter.JSON
	config       Config
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	orchestrator temporal.TemporalOrchestrator,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	opts := natsjs.ConnectOptions(natsjs.Config{
		URL:            cfg.URL,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectionName: cfg.ConnectionName,
	})

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return &bridge{
		nc:           nc,
		js:           js,
		orchestrator: orchestrator,
		json:         jsonAdapter,
		config:       cfg,
	}, nil
}

// Run consumes raffle events and starts one workflow per event until ctx is cancelled.
// In-flight messages are finished before Run returns.
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event bridge",
		zap.String("stream", b.config.StreamName),
		zap.String("consumer", b.config.ConsumerName))

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: messaging.SubjectFilter(),
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved",
		zap.String("consumer", consumerInfo.Name),
		zap.Uint64("pending", consumerInfo.NumPending))

	// Handlers outlive the shutdown signal so in-flight messages can still be acknowledged
	handlerCtx := context.WithoutCancel(ctx)
	pool := pond.NewPool(b.config.Concurrency)

	sub, err := consumer.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			b.handleMessage(handlerCtx, msg)
		})
	})
	if err != nil {
		pool.StopAndWait()
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	logger.InfoCtx(ctx, "Started consuming messages")

	<-ctx.Done()
	logger.InfoCtx(ctx, "Shutting down event bridge")

	sub.Stop()
	pool.StopAndWait()

	return nil
}

// handleMessage forwards one message. Unparseable messages are terminated,
// forwarding failures are NAKed for redelivery.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var delivered uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		delivered = metadata.NumDelivered
	}

	var event domain.RaffleEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to unmarshal raffle event: %w", err))
		b.term(ctx, msg)
		return
	}

	if !event.Entity.Valid() || event.DedupKey == "" {
		logger.ErrorCtx(ctx, errors.New("dropping malformed raffle event"),
			zap.String("entity", string(event.Entity)),
			zap.String("eventID", event.ID))
		b.term(ctx, msg)
		return
	}

	logger.InfoCtx(ctx, "Received raffle event",
		zap.String("eventID", event.ID),
		zap.String("entity", string(event.Entity)),
		zap.String("raffleAddress", event.RaffleAddress),
		zap.Uint64("deliveryCount", delivered))

	if err := b.forwardToWorker(ctx, &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("eventID", event.ID))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to NAK message: %w", err))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to ACK message: %w", err))
	}
}

// forwardToWorker starts the event workflow. The workflow ID is derived from the dedup key,
// so a redelivered event maps onto the execution that already exists.
func (b *bridge) forwardToWorker(ctx context.Context, event *domain.RaffleEvent) error {
	opt := client.StartWorkflowOptions{
		ID:                    WorkflowID(event),
		TaskQueue:             b.config.TemporalTaskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowRunTimeout:    30 * time.Minute,
	}

	_, err := b.orchestrator.ExecuteWorkflow(ctx, opt, scheduler.WorkflowProcessRaffleEvent, event)
	if err != nil {
		if scheduler.IsAlreadyStarted(err) {
			logger.InfoCtx(ctx, "Raffle event already forwarded", zap.String("workflowID", opt.ID))
			return nil
		}
		return fmt.Errorf("failed to execute workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Event forwarded to worker",
		zap.String("workflowID", opt.ID),
		zap.String("entity", string(event.Entity)))

	return nil
}

func (b *bridge) term(ctx context.Context, msg adapter.Message) {
	if err := msg.Term(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to terminate message: %w", err))
	}
}

// WorkflowID returns the ID of the workflow processing an event
func WorkflowID(event *domain.RaffleEvent) string {
	return fmt.Sprintf("raffle-event-%s-%s", event.Entity, event.DedupKey)
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
