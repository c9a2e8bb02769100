package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/logger"
)

const (
	// DefaultKeyPrefix namespaces the redis_rate keys
	DefaultKeyPrefix = "ff-raffle:limiter:"
	// DefaultHealthCheckInterval is how often redis availability is probed
	DefaultHealthCheckInterval = 10 * time.Second
	// maxLocalKeys bounds the fallback limiter table
	maxLocalKeys = 10000
)

// Config holds the rate limiter configuration
type Config struct {
	RequestsPerSecond   int
	Burst               int
	KeyPrefix           string
	HealthCheckInterval time.Duration
}

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client may make another request
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request from the budget of key
	Allow(ctx context.Context, key string) Decision

	// Close stops the redis health monitor
	Close()
}

type limiter struct {
	config         Config
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	redisAvailable atomic.Bool

	mu    sync.Mutex
	local map[string]*rate.Limiter

	done      chan struct{}
	closeOnce sync.Once
}

// NewLimiter creates a limiter that counts requests in redis and falls back to
// in-process token buckets while redis is unreachable
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if cfg.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = DefaultHealthCheckInterval
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	l := &limiter{
		config:      cfg,
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		local:       make(map[string]*rate.Limiter),
		done:        make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("redis_available", redisAvailable),
	)

	return l, nil
}

// Allow consumes one request from the budget of key
func (l *limiter) Allow(ctx context.Context, key string) Decision {
	if l.redisAvailable.Load() {
		res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, redis_rate.Limit{
			Rate:   l.config.RequestsPerSecond,
			Burst:  l.config.Burst,
			Period: time.Second,
		})
		if err == nil {
			return Decision{
				Allowed:    res.Allowed > 0,
				Remaining:  res.Remaining,
				RetryAfter: res.RetryAfter,
			}
		}

		if ctx.Err() == nil {
			l.redisAvailable.Store(false)
			logger.Warn("Redis rate limiter error, falling back to local",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return l.allowLocal(key)
}

func (l *limiter) allowLocal(key string) Decision {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		if len(l.local) >= maxLocalKeys {
			l.local = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)
		l.local[key] = lim
	}
	l.mu.Unlock()

	now := l.clock.Now()
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}
	}

	return Decision{Allowed: true, Remaining: int(lim.TokensAt(now))}
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	ticker := l.clock.NewTicker(l.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		available := err == nil
		wasAvailable := l.redisAvailable.Swap(available)

		if !wasAvailable && available {
			logger.Info("Redis connection restored")
		}
	}
}

// Close stops the redis health monitor
func (l *limiter) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}
