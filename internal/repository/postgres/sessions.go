package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostapkoval/cinechain/internal/domain"
	"github.com/ostapkoval/cinechain/internal/repository"
)

type SessionRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SessionRepo) With(db DB) *SessionRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SessionRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a session.
//
// Returns:
//   - int64: the new session ID.
//   - error: repository.ErrNotFound if the movie or hall does not exist.
//   - error: repository.ErrCheckViolation when price < 0.
func (r *SessionRepo) Create(
	ctx context.Context,
	movieID, hallID int64,
	startTime time.Time,
	price float64,
) (int64, error) {
	const op = "postgres.SessionRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO sessions(movie_id, hall_id, start_time, price)
       	 VALUES ($1, $2, $3, $4)
     	 RETURNING id`,
		movieID, hallID, startTime, price,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *SessionRepo) Get(ctx context.Context, id int64) (*domain.Session, error) {
	const op = "postgres.SessionRepo.Get"

	db := r.handle()

	var s domain.Session
	err := db.QueryRow(ctx,
		`SELECT id, movie_id, hall_id, start_time, price
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.MovieID, &s.HallID, &s.StartTime, &s.Price)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &s, nil
}

// Delete removes a session; its tickets cascade.
func (r *SessionRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.SessionRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
