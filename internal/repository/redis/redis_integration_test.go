package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a throwaway Redis instance. They are skipped
// unless TEST_REDIS_ADDR points at one, e.g.
//
//	TEST_REDIS_ADDR=localhost:6379 go test ./...
func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err())

	return rdb
}

// testKey namespaces per-test keys so parallel runs cannot collide.
func testKey(t *testing.T) string {
	return fmt.Sprintf("cinechain:test:%s:%d", t.Name(), time.Now().UnixNano())
}

func TestSlidingWindowLimiterDeniesOverLimit(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	limiter := NewSlidingWindowLimiter(rdb, testKey(t), 3, time.Minute)

	for i := 1; i <= 3; i++ {
		allowed, current, _, err := limiter.Allow(ctx, "ip:203.0.113.7")
		require.NoError(t, err)
		assert.True(t, allowed, "call %d should pass", i)
		assert.EqualValues(t, i, current)
	}

	allowed, current, retryAfter, err := limiter.Allow(ctx, "ip:203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed, "call over the limit must be denied")
	assert.EqualValues(t, 4, current)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)

	// A different caller key has its own budget.
	allowed, _, _, err = limiter.Allow(ctx, "ip:203.0.113.8")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiterWindowSlides(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	limiter := NewSlidingWindowLimiter(rdb, testKey(t), 1, 300*time.Millisecond)

	allowed, _, _, err := limiter.Allow(ctx, "ip:203.0.113.7")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, _, err = limiter.Allow(ctx, "ip:203.0.113.7")
	require.NoError(t, err)
	require.False(t, allowed)

	time.Sleep(350 * time.Millisecond)

	allowed, _, _, err = limiter.Allow(ctx, "ip:203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed, "hit outside the window must pass again")
}

func TestIdempotencyStoreLockAndReplay(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	store := NewIdempotencyStore(rdb, time.Minute)
	key := testKey(t)

	locked, err := store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, locked, "first caller takes the lock")

	locked, err = store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, locked, "second caller must not take a held lock")

	// A held lock is not a result yet.
	_, ok, err := store.GetResult(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveResult(ctx, key, `{"ticket_id":10000}`))

	payload, ok, err := store.GetResult(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"ticket_id":10000}`, payload)
}

func TestIdempotencyStoreReleaseFreesKey(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	store := NewIdempotencyStore(rdb, time.Minute)
	key := testKey(t)

	locked, err := store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	// A failed operation releases the lock so a retry can run the
	// operation again instead of being answered from a stale lock.
	require.NoError(t, store.Release(ctx, key))

	locked, err = store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, locked, "released key must be lockable again")
}

func TestCacheGetOrSetJSONLoadsOnce(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	cache := New(rdb)
	key := testKey(t)

	calls := 0
	loader := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, err := GetOrSetJSON(ctx, cache, key, time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = GetOrSetJSON(ctx, cache, key, time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls, "second read must come from the cache")

	require.NoError(t, cache.Del(ctx, key))

	_, err = GetOrSetJSON(ctx, cache, key, time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "invalidation must force a reload")
}
