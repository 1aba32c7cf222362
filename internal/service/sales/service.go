package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/ostapkoval/cinechain/internal/domain"
	redisx "github.com/ostapkoval/cinechain/internal/redis"
	"github.com/ostapkoval/cinechain/internal/repository"
	postgresrepo "github.com/ostapkoval/cinechain/internal/repository/postgres"
	redisrepo "github.com/ostapkoval/cinechain/internal/repository/redis"
	"github.com/ostapkoval/cinechain/internal/uow"
)

// maxSellAttempts bounds retries of serialization failures. Domain errors
// are never retried; only the storage engine asking us to rerun the
// transaction is.
const maxSellAttempts = 3

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisx.SchedulePubSub
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.SchedulePubSub,
	limiter *redisrepo.SlidingWindowLimiter,
) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
	}
}

// SellTicket sells a seat for a session: one serializable transaction that
// checks the session is in the future and inserts the sold ticket. The
// double-booking rule is enforced by the storage layer atomically with the
// insert, so two concurrent sales of the same seat cannot both commit.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sessionID: the session being sold for.
//   - row, seatNumber: physical seat coordinates.
//   - rlKey: rate-limit bucket for the caller; empty disables limiting.
//
// Returns:
//   - *domain.Ticket: the created sale record.
//   - error: sales.ErrSessionNotFound if the session does not exist.
//   - error: sales.ErrSeatTaken if the seat was already sold.
//   - error: sales.ErrSessionStarted if the session start time has passed.
//   - error: sales.ErrInvalidSeat for non-positive coordinates.
//   - error: sales.ErrRateLimited when rlKey exceeded its window budget.
func (s *Service) SellTicket(
	ctx context.Context,
	sessionID int64,
	row, seatNumber int,
	rlKey string,
) (*domain.Ticket, error) {
	const op = "service.sales.SellTicket"

	if row <= 0 || seatNumber <= 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidSeat)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s:%w: retry in %s", op, ErrRateLimited, retry)
		}
	}

	var ticket *domain.Ticket
	var err error

	for attempt := 0; attempt < maxSellAttempts; attempt++ {
		err = s.uow.Do(ctx, func(
			ctx context.Context,
			tx postgresrepo.DB,
			after func(uow.AfterCommit),
		) error {
			t, err := s.store.Tickets().With(tx).Sell(ctx, sessionID, row, seatNumber)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%s:%w", op, ErrSessionNotFound)
				}

				if errors.Is(err, repository.ErrConflict) {
					return fmt.Errorf("%s:%w", op, ErrSeatTaken)
				}

				if errors.Is(err, repository.ErrSessionStarted) {
					return fmt.Errorf("%s:%w", op, ErrSessionStarted)
				}

				return fmt.Errorf("%s:%w", op, err)
			}

			ticket = t

			after(func(ctx context.Context) {
				_ = s.cache.InvalidateSession(ctx, sessionID)
				_ = s.pubsub.PublishScheduleChanged(ctx, sessionID)
			})

			return nil
		})

		if err == nil || !postgresrepo.IsRetryable(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return ticket, nil
}
