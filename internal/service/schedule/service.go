package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ostapkoval/cinechain/internal/domain"
	redisx "github.com/ostapkoval/cinechain/internal/redis"
	"github.com/ostapkoval/cinechain/internal/repository"
	postgresrepo "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/uow"
)

type Config struct {
	DefaultMoviePage int
	MaxMoviePage     int
}

// Service owns the movie, genre and session administration. The check
// constraints on movie duration and session price live in the schema; this
// layer translates their violations into typed failures.
type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisx.SchedulePubSub
	uow    *uow.UoW
	cfg    Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.SchedulePubSub,
	cfg Config,
) *Service {
	if cfg.DefaultMoviePage <= 0 {
		cfg.DefaultMoviePage = 10
	}

	if cfg.MaxMoviePage <= 0 {
		cfg.MaxMoviePage = 100
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
	}
}

// CreateMovie creates a movie record and returns its ID.
//
// Returns:
//   - int64: the created movie ID.
//   - error: schedule.ErrInvalidMovieDuration when duration <= 0; nothing
//     is persisted.
func (s *Service) CreateMovie(
	ctx context.Context,
	title string,
	duration, ageRestriction int,
	releaseDate time.Time,
	description string,
) (int64, error) {
	const op = "service.schedule.CreateMovie"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Movies().
			With(tx).
			Create(ctx, title, duration, ageRestriction, releaseDate, description)
		if err != nil {
			if errors.Is(err, repository.ErrCheckViolation) {
				return fmt.Errorf("%s: %w", op, ErrInvalidMovieDuration)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
		})
		return nil
	})

	return id, err
}

// GetMovie retrieves a movie with its genres.
//
// Returns:
//   - *domain.MovieWithGenres: the movie when found.
//   - error: schedule.ErrMovieNotFound if the movie does not exist.
func (s *Service) GetMovie(ctx context.Context, id int64) (*domain.MovieWithGenres, error) {
	const op = "service.schedule.GetMovie"

	m, err := s.store.Movies().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// SearchMovies returns one page of movies filtered by title. Page size is
// clamped to the configured maximum.
func (s *Service) SearchMovies(
	ctx context.Context,
	titleFilter string,
	limit, offset int,
) (*domain.MoviePage, error) {
	const op = "service.schedule.SearchMovies"

	if limit <= 0 {
		limit = s.cfg.DefaultMoviePage
	}

	if limit > s.cfg.MaxMoviePage {
		limit = s.cfg.MaxMoviePage
	}

	if offset < 0 {
		offset = 0
	}

	page, err := s.store.Movies().Search(ctx, titleFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// UpdateMovie applies a partial update: blank strings and nil numbers keep
// the stored values.
//
// Returns:
//   - error: schedule.ErrMovieNotFound if the movie does not exist.
//   - error: schedule.ErrInvalidMovieDuration when the new duration <= 0;
//     the whole update rolls back.
func (s *Service) UpdateMovie(
	ctx context.Context,
	id int64,
	title string,
	duration, ageRestriction *int,
	releaseDate *time.Time,
	description string,
) error {
	const op = "service.schedule.UpdateMovie"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		err := s.store.Movies().
			With(tx).
			Update(ctx, id, title, duration, ageRestriction, releaseDate, description)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrMovieNotFound)
			}
			if errors.Is(err, repository.ErrCheckViolation) {
				return fmt.Errorf("%s: %w", op, ErrInvalidMovieDuration)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
		})
		return nil
	})
}

// DeleteMovie removes a movie with its sessions, tickets and genre links.
//
// Returns:
//   - error: schedule.ErrMovieNotFound if the movie does not exist.
func (s *Service) DeleteMovie(ctx context.Context, id int64) error {
	const op = "service.schedule.DeleteMovie"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Movies().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrMovieNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
		})
		return nil
	})
}

func (s *Service) CreateGenre(ctx context.Context, name string) (int64, error) {
	const op = "service.schedule.CreateGenre"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Movies().With(tx).CreateGenre(ctx, name)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

func (s *Service) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	const op = "service.schedule.ListGenres"

	genres, err := s.store.Movies().ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return genres, nil
}

func (s *Service) DeleteGenre(ctx context.Context, id int64) error {
	const op = "service.schedule.DeleteGenre"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Movies().With(tx).DeleteGenre(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrGenreNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// LinkGenre attaches a genre to a movie.
//
// Returns:
//   - error: schedule.ErrGenreAlreadyLinked if the pair already exists.
//   - error: schedule.ErrMovieNotFound if the movie or genre is missing.
func (s *Service) LinkGenre(ctx context.Context, movieID, genreID int64) error {
	const op = "service.schedule.LinkGenre"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Movies().With(tx).LinkGenre(ctx, movieID, genreID); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrGenreAlreadyLinked)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrMovieNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

func (s *Service) UnlinkGenre(ctx context.Context, movieID, genreID int64) error {
	const op = "service.schedule.UnlinkGenre"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Movies().With(tx).UnlinkGenre(ctx, movieID, genreID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrGenreNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// CreateSession schedules a session of a movie in a hall.
//
// Returns:
//   - int64: the created session ID.
//   - error: schedule.ErrMovieOrHallNotFound if either parent is missing.
//   - error: schedule.ErrInvalidSessionPrice when price < 0; nothing is
//     persisted.
func (s *Service) CreateSession(
	ctx context.Context,
	movieID, hallID int64,
	startTime time.Time,
	price float64,
) (int64, error) {
	const op = "service.schedule.CreateSession"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Sessions().With(tx).Create(ctx, movieID, hallID, startTime, price)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrMovieOrHallNotFound)
			}
			if errors.Is(err, repository.ErrCheckViolation) {
				return fmt.Errorf("%s: %w", op, ErrInvalidSessionPrice)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
			_ = s.pubsub.PublishScheduleChanged(ctx, id)
		})
		return nil
	})

	return id, err
}

// DeleteSession removes a session; its tickets cascade.
//
// Returns:
//   - error: schedule.ErrSessionNotFound if the session does not exist.
func (s *Service) DeleteSession(ctx context.Context, id int64) error {
	const op = "service.schedule.DeleteSession"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Sessions().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrSessionNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
			_ = s.cache.InvalidateSession(ctx, id)
			_ = s.pubsub.PublishScheduleChanged(ctx, id)
		})
		return nil
	})
}
