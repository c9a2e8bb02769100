package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/mocks"
	"github.com/feral-file/ff-raffle/internal/ratelimit"
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

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testLimiterMocks contains all the mocks needed for testing the limiter
type testLimiterMocks struct {
	ctrl             *gomock.Controller
	redisClient      *mocks.MockRedisClient
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
}

// setupTestLimiter creates all the mocks for testing
func setupTestLimiter(t *testing.T) *testLimiterMocks {
	ctrl := gomock.NewController(t)

	return &testLimiterMocks{
		ctrl:             ctrl,
		redisClient:      mocks.NewMockRedisClient(ctrl),
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
	}
}

// tearDownTestLimiter cleans up the test mocks
func tearDownTestLimiter(mocks *testLimiterMocks) {
	mocks.ctrl.Finish()
}

// newLimiter creates a limiter with common mock expectations
func newLimiter(t *testing.T, tm *testLimiterMocks, cfg ratelimit.Config, redisAvailable bool) ratelimit.Limiter {
	t.Helper()

	statusCmd := redis.NewStatusCmd(context.Background())
	if redisAvailable {
		statusCmd.SetVal("PONG")
	} else {
		statusCmd.SetErr(errors.New("connection refused"))
	}
	tm.redisClient.EXPECT().Ping(gomock.Any()).Return(statusCmd)
	tm.redisClient.EXPECT().NewRateLimiter().Return(tm.redisRateLimiter)

	ticker := time.NewTicker(time.Hour)
	t.Cleanup(ticker.Stop)
	tm.clock.EXPECT().NewTicker(gomock.Any()).Return(ticker).AnyTimes()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	l, err := ratelimit.NewLimiter(cfg, tm.redisClient, tm.clock)
	require.NoError(t, err)
	t.Cleanup(l.Close)

	return l
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tearDownTestLimiter(tm)

	_, err := ratelimit.NewLimiter(ratelimit.Config{}, tm.redisClient, tm.clock)
	assert.Error(t, err)
}

func TestAllow_Distributed(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tearDownTestLimiter(tm)

	l := newLimiter(t, tm, ratelimit.Config{RequestsPerSecond: 5, Burst: 10}, true)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "ff-raffle:limiter:10.0.0.1", redis_rate.Limit{Rate: 5, Burst: 10, Period: time.Second}).
		Return(&redis_rate.Result{Allowed: 1, Remaining: 9}, nil)

	d := l.Allow(context.Background(), "10.0.0.1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 9, d.Remaining)
}

func TestAllow_DistributedLimited(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tearDownTestLimiter(tm)

	l := newLimiter(t, tm, ratelimit.Config{RequestsPerSecond: 5, KeyPrefix: "test:"}, true)

	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "test:10.0.0.1", gomock.Any()).
		Return(&redis_rate.Result{Allowed: 0, RetryAfter: 200 * time.Millisecond}, nil)

	d := l.Allow(context.Background(), "10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 200*time.Millisecond, d.RetryAfter)
}

func TestAllow_RedisErrorFallsBackToLocal(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tearDownTestLimiter(tm)

	l := newLimiter(t, tm, ratelimit.Config{RequestsPerSecond: 1, Burst: 2}, true)

	// The first failure marks redis unavailable, later calls stay local
	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset")).
		Times(1)

	assert.True(t, l.Allow(context.Background(), "10.0.0.1").Allowed)
	assert.True(t, l.Allow(context.Background(), "10.0.0.1").Allowed)

	d := l.Allow(context.Background(), "10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
}

func TestAllow_LocalBucketsArePerKey(t *testing.T) {
	tm := setupTestLimiter(t)
	defer tearDownTestLimiter(tm)

	l := newLimiter(t, tm, ratelimit.Config{RequestsPerSecond: 1, Burst: 1}, false)

	assert.True(t, l.Allow(context.Background(), "10.0.0.1").Allowed)
	assert.False(t, l.Allow(context.Background(), "10.0.0.1").Allowed)
	assert.True(t, l.Allow(context.Background(), "10.0.0.2").Allowed)
}
