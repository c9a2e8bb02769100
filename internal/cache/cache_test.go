package cache_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/cache"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type raffleView struct {
	ID      string `json:"id"`
	Tickets int64  `json:"tickets"`
}

// testCacheMocks contains all the mocks needed for testing the cache
type testCacheMocks struct {
	ctrl   *gomock.Controller
	client *mocks.MockRedisClient
	cache  cache.Cache
}

func setupTestCache(t *testing.T) *testCacheMocks {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRedisClient(ctrl)

	return &testCacheMocks{
		ctrl:   ctrl,
		client: client,
		cache:  cache.NewCache(client, adapter.NewJSON()),
	}
}

func tearDownTestCache(tm *testCacheMocks) {
	tm.ctrl.Finish()
}

func TestCache_Get_Hit(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Get(gomock.Any(), "ff-raffle:raffle:1").
		Return(redis.NewStringResult(`{"id":"1","tickets":12}`, nil))

	var view raffleView
	hit, err := tm.cache.Get(context.Background(), "raffle:1", &view)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, raffleView{ID: "1", Tickets: 12}, view)
}

func TestCache_Get_Miss(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Get(gomock.Any(), "ff-raffle:raffle:1").
		Return(redis.NewStringResult("", redis.Nil))

	var view raffleView
	hit, err := tm.cache.Get(context.Background(), "raffle:1", &view)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_Get_CorruptValue(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Get(gomock.Any(), "ff-raffle:raffle:1").
		Return(redis.NewStringResult("{", nil))

	var view raffleView
	hit, err := tm.cache.Get(context.Background(), "raffle:1", &view)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestCache_Set(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Set(gomock.Any(), "ff-raffle:raffle:1", []byte(`{"id":"1","tickets":3}`), 30*time.Second).
		Return(redis.NewStatusResult("OK", nil))

	err := tm.cache.Set(context.Background(), "raffle:1", raffleView{ID: "1", Tickets: 3}, 30*time.Second)
	assert.NoError(t, err)
}

func TestCache_Del(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Del(gomock.Any(), "ff-raffle:raffles", "ff-raffle:raffle:1").
		Return(redis.NewIntResult(2, nil))

	assert.NoError(t, tm.cache.Del(context.Background(), "raffles", "raffle:1"))
	assert.NoError(t, tm.cache.Del(context.Background()))
}

func TestRemember_Hit(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Get(gomock.Any(), "ff-raffle:raffle:1").
		Return(redis.NewStringResult(`{"id":"1","tickets":5}`, nil))

	view, err := cache.Remember(context.Background(), tm.cache, "raffle:1", time.Minute,
		func(ctx context.Context) (raffleView, error) {
			t.Fatal("loader must not run on a cache hit")
			return raffleView{}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, int64(5), view.Tickets)
}

func TestRemember_MissStoresValue(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	gomock.InOrder(
		tm.client.EXPECT().Get(gomock.Any(), "ff-raffle:raffle:1").
			Return(redis.NewStringResult("", redis.Nil)),
		tm.client.EXPECT().Set(gomock.Any(), "ff-raffle:raffle:1", gomock.Any(), time.Minute).
			Return(redis.NewStatusResult("OK", nil)),
	)

	view, err := cache.Remember(context.Background(), tm.cache, "raffle:1", time.Minute,
		func(ctx context.Context) (raffleView, error) {
			return raffleView{ID: "1", Tickets: 7}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, raffleView{ID: "1", Tickets: 7}, view)
}

func TestRemember_RedisDownFallsThrough(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(redis.NewStringResult("", errors.New("connection refused")))
	tm.client.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(redis.NewStatusResult("", errors.New("connection refused")))

	view, err := cache.Remember(context.Background(), tm.cache, "raffle:1", time.Minute,
		func(ctx context.Context) (raffleView, error) {
			return raffleView{ID: "1"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "1", view.ID)
}

func TestRemember_LoaderErrorIsNotCached(t *testing.T) {
	tm := setupTestCache(t)
	defer tearDownTestCache(tm)

	tm.client.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(redis.NewStringResult("", redis.Nil))

	loadErr := errors.New("raffle missing")
	_, err := cache.Remember(context.Background(), tm.cache, "raffle:1", time.Minute,
		func(ctx context.Context) (raffleView, error) {
			return raffleView{}, loadErr
		})
	assert.ErrorIs(t, err, loadErr)
}

func TestRaffleKeys(t *testing.T) {
	keys := cache.RaffleKeys("a", "", "b")
	assert.Equal(t, []string{
		"raffles:current",
		"raffle:a", "raffle:a:winners", "raffle:a:verification",
		"raffle:b", "raffle:b:winners", "raffle:b:verification",
	}, keys)

	assert.Equal(t, []string{cache.CurrentRafflesKey}, cache.RaffleKeys())
}
