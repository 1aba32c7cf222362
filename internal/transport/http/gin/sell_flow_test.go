package httpgin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisx "github.com/ostapkoval/cinechain/internal/redis"
	postgresrepo "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/service"
)

// The sale-flow tests exercise the full HTTP path (idempotency, rate limit,
// the sale transaction) and need both backing stores. They are skipped
// unless TEST_DATABASE_URL and TEST_REDIS_ADDR are set.
type sellFixture struct {
	router    *gin.Engine
	pool      *pgxpool.Pool
	store     *postgresrepo.Store
	sessionID int64
}

func newSellFixture(t *testing.T, rateLimit int) *sellFixture {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgresrepo.Migrate(ctx, pool))
	_, err = pool.Exec(ctx,
		`TRUNCATE cinemas, genres, movies, halls, movie_genres, sessions, tickets
		 RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())

	store := postgresrepo.NewStore(pool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewSchedulePubSub(rdb)

	// Per-test limiter prefix so windows never leak across tests.
	prefix := fmt.Sprintf("cinechain:test:rl:%s:%d", t.Name(), time.Now().UnixNano())
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, prefix, rateLimit, time.Minute)
	idem := redisrepo.NewIdempotencyStore(rdb, time.Minute)

	svcs := service.NewServices(store, cache, pubsub, limiter, service.Config{})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(svcs, idem, logger)

	cinemaID, err := store.Cinemas().Create(ctx, "Kyiv", "Khreshchatyk 1", "")
	require.NoError(t, err)
	hallID, err := store.Halls().Create(ctx, cinemaID, "Red", 100)
	require.NoError(t, err)
	movieID, err := store.Movies().Create(ctx, "Solaris", 167, 12,
		time.Date(1972, 3, 20, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	sessionID, err := store.Sessions().Create(ctx, movieID, hallID,
		time.Now().Add(24*time.Hour), 10)
	require.NoError(t, err)

	return &sellFixture{
		router:    router,
		pool:      pool,
		store:     store,
		sessionID: sessionID,
	}
}

func (f *sellFixture) sell(t *testing.T, sessionID int64, row, seat int, idemKey string) *httptest.ResponseRecorder {
	t.Helper()

	body := fmt.Sprintf(`{"row":%d,"seat_number":%d}`, row, seat)
	req := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/sessions/%d/tickets", sessionID),
		strings.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *sellFixture) ticketCount(t *testing.T) int {
	t.Helper()

	var n int
	err := f.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM tickets`).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestSellTicketIdempotentReplay(t *testing.T) {
	f := newSellFixture(t, 100)
	key := uuid.NewString()

	rec := f.sell(t, f.sessionID, 1, 1, key)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var first SellTicketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.GreaterOrEqual(t, first.TicketID, int64(10000))
	assert.Equal(t, f.sessionID, first.SessionID)

	// The replay is answered from the stored result: same status, same
	// ticket, and no second row in the database.
	rec2 := f.sell(t, f.sessionID, 1, 1, key)
	require.Equal(t, http.StatusCreated, rec2.Code, rec2.Body.String())

	var replay SellTicketResponse
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &replay))
	assert.Equal(t, first.TicketID, replay.TicketID)
	assert.Equal(t, key, rec2.Header().Get("Idempotency-Key"))

	assert.Equal(t, 1, f.ticketCount(t))

	// A fresh request without the key hits the seat conflict, proving the
	// replay never re-ran the sale.
	rec3 := f.sell(t, f.sessionID, 1, 1, "")
	assert.Equal(t, http.StatusConflict, rec3.Code)
}

func TestSellTicketFailureReleasesIdempotencyKey(t *testing.T) {
	f := newSellFixture(t, 100)
	ctx := context.Background()

	// A session that already started: the sale fails, and the failure must
	// release the idempotency lock.
	movieID := int64(10000)
	hallID := int64(10000)
	pastID, err := f.store.Sessions().Create(ctx, movieID, hallID,
		time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)

	key := uuid.NewString()

	rec := f.sell(t, pastID, 1, 1, key)
	require.Equal(t, http.StatusPreconditionFailed, rec.Code, rec.Body.String())

	// The retry with the same key runs the operation again rather than
	// being answered with "in progress".
	rec2 := f.sell(t, pastID, 1, 1, key)
	assert.Equal(t, http.StatusPreconditionFailed, rec2.Code, rec2.Body.String())

	assert.Zero(t, f.ticketCount(t))
}

func TestSellTicketRateLimited(t *testing.T) {
	f := newSellFixture(t, 2)

	rec := f.sell(t, f.sessionID, 1, 1, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.sell(t, f.sessionID, 1, 2, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Third call from the same client within the window.
	rec = f.sell(t, f.sessionID, 1, 3, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, 2, f.ticketCount(t))
}
