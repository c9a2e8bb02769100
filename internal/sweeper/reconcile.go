package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/scheduler"
)

// Sweeper is a background loop that keeps every enabled raffle type reconciled
type Sweeper interface {
	// Start blocks until ctx is canceled or Stop is called
	Start(ctx context.Context) error
	// Stop waits for the running cycle to finish
	Stop(ctx context.Context) error
	Name() string
}

// ReconcileSweeperConfig holds configuration for the reconcile sweeper
type ReconcileSweeperConfig struct {
	Types         []domain.RaffleType
	Interval      time.Duration // Time to sleep between sweep cycles
	PoolSize      int           // Types triggered concurrently
	MaxRetries    uint64        // Retries of a failed trigger within a cycle
	RetryInterval time.Duration // Initial backoff between retries
}

// reconcileSweeper periodically starts a reconciliation per raffle type and
// keeps the successor-check cron workflows registered
type reconcileSweeper struct {
	config    *ReconcileSweeperConfig
	scheduler scheduler.JobScheduler
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewReconcileSweeper creates a new reconcile sweeper
func NewReconcileSweeper(config *ReconcileSweeperConfig, sched scheduler.JobScheduler, clock adapter.Clock) Sweeper {
	return &reconcileSweeper{
		config:    config,
		scheduler: sched,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *reconcileSweeper) Name() string {
	return "reconcile-sweeper"
}

// Start registers the successor checks, then runs a sweep cycle every interval
func (s *reconcileSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting reconcile sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("pool_size", s.config.PoolSize),
		zap.Int("types", len(s.config.Types)),
	)

	if err := s.registerSuccessorChecks(ctx); err != nil {
		return err
	}

	for {
		s.runSweepCycle(ctx)

		if !s.sleep(ctx, s.config.Interval) {
			logger.InfoCtx(ctx, "Reconcile sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *reconcileSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping reconcile sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Reconcile sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Reconcile sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// registerSuccessorChecks registers the cron workflow of every configured type
func (s *reconcileSweeper) registerSuccessorChecks(ctx context.Context) error {
	for _, t := range s.config.Types {
		cfg, err := domain.ConfigFor(t)
		if err != nil {
			return err
		}

		err = s.retry(ctx, "successor check registration", t, func() error {
			return s.scheduler.ScheduleSuccessorCheck(ctx, t, cfg.SuccessorCheckSchedule)
		})
		if err != nil {
			return fmt.Errorf("failed to register successor check for %s: %w", t, err)
		}

		logger.InfoCtx(ctx, "Successor check registered",
			zap.String("raffleType", string(t)),
			zap.String("cron", cfg.SuccessorCheckSchedule),
		)
	}
	return nil
}

// runSweepCycle starts a reconciliation of every configured type
func (s *reconcileSweeper) runSweepCycle(ctx context.Context) {
	startTime := s.clock.Now()

	pool := pond.NewPool(s.config.PoolSize, pond.WithContext(ctx))

	var triggered, failed atomic.Int32
	for _, t := range s.config.Types {
		pool.Submit(func() {
			err := s.retry(ctx, "reconcile trigger", t, func() error {
				return s.scheduler.ScheduleReconcile(ctx, t)
			})
			if err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, fmt.Errorf("failed to trigger reconciliation: %w", err),
					zap.String("raffleType", string(t)))
				return
			}
			triggered.Add(1)
		})
	}

	pool.StopAndWait()

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("triggered", triggered.Load()),
		zap.Int32("failed", failed.Load()),
	)
}

// retry runs operation with exponential backoff, bounded by MaxRetries
func (s *reconcileSweeper) retry(ctx context.Context, what string, t domain.RaffleType, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	if s.config.RetryInterval > 0 {
		b.InitialInterval = s.config.RetryInterval
	}
	b.MaxInterval = time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.config.MaxRetries), ctx)

	var attemptCount int
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Retrying "+what,
			zap.String("raffleType", string(t)),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next),
		)
	}

	return backoff.RetryNotify(operation, policy, notifyOnError)
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *reconcileSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
