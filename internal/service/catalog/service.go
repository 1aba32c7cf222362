package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ostapkoval/cinechain/internal/domain"
	"github.com/ostapkoval/cinechain/internal/repository"
	postgresrepo "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/uow"
)

// Service owns the administrative cinema and hall operations. Each call is
// one unit of work: the transaction commits or rolls back before the call
// returns.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache) *Service {
	return &Service{
		store: store,
		cache: cache,
		uow:   uow.NewUoW(store),
	}
}

// CreateCinema creates a cinema record and returns its ID.
//
// Parameters:
//   - ctx: request-scoped context.
//   - city, address, email: scalar fields; all may be blank.
//
// Returns:
//   - int64: the created cinema ID on success.
func (s *Service) CreateCinema(ctx context.Context, city, address, email string) (int64, error) {
	const op = "service.catalog.CreateCinema"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Cinemas().With(tx).Create(ctx, city, address, email)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// ListCinemas returns cinemas, optionally filtered by a city or address
// substring (case-insensitive). A blank filter returns all cinemas.
func (s *Service) ListCinemas(ctx context.Context, filter string) ([]domain.Cinema, error) {
	const op = "service.catalog.ListCinemas"

	cinemas, err := s.store.Cinemas().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cinemas, nil
}

// GetCinemaWithHalls retrieves a cinema and its halls.
//
// Returns:
//   - *domain.CinemaWithHalls: the cinema with its halls.
//   - error: catalog.ErrCinemaNotFound if the cinema does not exist.
func (s *Service) GetCinemaWithHalls(ctx context.Context, id int64) (*domain.CinemaWithHalls, error) {
	const op = "service.catalog.GetCinemaWithHalls"

	c, err := s.store.Cinemas().GetWithHalls(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCinemaNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// UpdateCinema applies a partial update: only non-blank fields overwrite the
// stored values.
//
// Returns:
//   - error: catalog.ErrCinemaNotFound if the cinema does not exist.
func (s *Service) UpdateCinema(ctx context.Context, id int64, city, address, email string) error {
	const op = "service.catalog.UpdateCinema"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Cinemas().With(tx).Update(ctx, id, city, address, email); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrCinemaNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// DeleteCinema removes a cinema; halls, sessions and tickets underneath it
// go with the cascade.
//
// Returns:
//   - error: catalog.ErrCinemaNotFound if the cinema does not exist.
func (s *Service) DeleteCinema(ctx context.Context, id int64) error {
	const op = "service.catalog.DeleteCinema"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Cinemas().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrCinemaNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
			_ = s.cache.InvalidateCinemaRevenue(ctx, id)
		})
		return nil
	})
}

// CreateHall inserts a hall under the cinema.
//
// Returns:
//   - int64: the created hall ID.
//   - error: catalog.ErrCinemaNotFound if the cinema does not exist.
func (s *Service) CreateHall(ctx context.Context, cinemaID int64, name string, seatsCount int) (int64, error) {
	const op = "service.catalog.CreateHall"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Halls().With(tx).Create(ctx, cinemaID, name, seatsCount)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrCinemaNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// UpdateHall applies a partial update. A blank name keeps the stored name; a
// nil seat count leaves capacity untouched. A non-nil seat count goes
// through the resize guard: it fails when the hall still has future
// sessions, and the whole update rolls back.
//
// Returns:
//   - error: catalog.ErrHallNotFound if the hall does not exist.
//   - error: catalog.ErrHallHasFutureSessions if capacity is being changed
//     while a future session exists.
func (s *Service) UpdateHall(ctx context.Context, id int64, name string, seatsCount *int) error {
	const op = "service.catalog.UpdateHall"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		halls := s.store.Halls().With(tx)

		if err := halls.Rename(ctx, id, name); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrHallNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if seatsCount == nil {
			return nil
		}

		if err := halls.Resize(ctx, id, *seatsCount); err != nil {
			if errors.Is(err, repository.ErrHallHasFutureSessions) {
				return fmt.Errorf("%s: %w", op, ErrHallHasFutureSessions)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrHallNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
}

// DeleteHall removes a hall; its sessions and tickets cascade.
//
// Returns:
//   - error: catalog.ErrHallNotFound if the hall does not exist.
func (s *Service) DeleteHall(ctx context.Context, id int64) error {
	const op = "service.catalog.DeleteHall"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Halls().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrHallNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateSchedule(ctx)
		})
		return nil
	})
}
