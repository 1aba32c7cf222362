package query

import (
	"context"
	"fmt"
	"time"

	"github.com/ostapkoval/cinechain/internal/domain"
	redisx "github.com/ostapkoval/cinechain/internal/redis"
	postgresrepo "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
)

type Config struct {
	ScheduleTTL  time.Duration
	FreeSeatsTTL time.Duration
	RevenueTTL   time.Duration
}

// Service serves the reporting projections. All of them are recomputed per
// query against the storage views; the redis layer only shortens the
// distance for repeated reads, with TTLs small enough that a stale answer
// is bounded by seconds.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ScheduleTTL <= 0 {
		cfg.ScheduleTTL = 60 * time.Second
	}

	if cfg.FreeSeatsTTL <= 0 {
		cfg.FreeSeatsTTL = 5 * time.Second
	}

	if cfg.RevenueTTL <= 0 {
		cfg.RevenueTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// FreeSeatsCount returns hall capacity minus sold tickets for the session.
// A session that does not exist (or has no hall) yields 0, not an error.
func (s *Service) FreeSeatsCount(ctx context.Context, sessionID int64) (int, error) {
	const op = "service.query.FreeSeatsCount"

	key := redisx.KeyFreeSeats(sessionID)

	free, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.FreeSeatsTTL,
		func(ctx context.Context) (int, error) {
			return s.store.Reports().FreeSeatsCount(ctx, sessionID)
		},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return free, nil
}

// CinemaRevenue returns the sum of session prices over the cinema's sold
// tickets. A cinema with no sold tickets (or no such cinema) yields 0.
func (s *Service) CinemaRevenue(ctx context.Context, cinemaID int64) (float64, error) {
	const op = "service.query.CinemaRevenue"

	key := redisx.KeyCinemaRevenue(cinemaID)

	revenue, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.RevenueTTL,
		func(ctx context.Context) (float64, error) {
			return s.store.Reports().CinemaRevenue(ctx, cinemaID)
		},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return revenue, nil
}

// SessionDetails returns the denormalized schedule rows.
func (s *Service) SessionDetails(ctx context.Context) ([]domain.SessionDetails, error) {
	const op = "service.query.SessionDetails"

	key := redisx.KeySessionDetails()

	details, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.ScheduleTTL,
		func(ctx context.Context) ([]domain.SessionDetails, error) {
			return s.store.Reports().SessionDetails(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return details, nil
}

// MovieStats returns per-movie session counts.
func (s *Service) MovieStats(ctx context.Context) ([]domain.MovieStats, error) {
	const op = "service.query.MovieStats"

	key := redisx.KeyMovieStats()

	stats, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.ScheduleTTL,
		func(ctx context.Context) ([]domain.MovieStats, error) {
			return s.store.Reports().MovieStats(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
