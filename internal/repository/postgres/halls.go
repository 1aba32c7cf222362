package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostapkoval/cinechain/internal/repository"
)

type HallRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *HallRepo) With(db DB) *HallRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *HallRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a hall under the given cinema.
//
// Returns:
//   - int64: the new hall ID.
//   - error: repository.ErrNotFound if the cinema does not exist (broken FK).
func (r *HallRepo) Create(ctx context.Context, cinemaID int64, name string, seatsCount int) (int64, error) {
	const op = "postgres.HallRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO halls(cinema_id, name, seats_count)
       	 VALUES ($1, $2, $3)
     	 RETURNING id`,
		cinemaID, name, seatsCount,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// Rename applies a partial name update: blank keeps the stored name.
func (r *HallRepo) Rename(ctx context.Context, id int64, name string) error {
	const op = "postgres.HallRepo.Rename"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE halls
		 SET name = COALESCE(NULLIF($2, ''), name)
		 WHERE id = $1`,
		id, name,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Resize changes the hall's seat count, guarded against halls that still
// have sessions scheduled in the future. The guard and the update must run
// inside one serializable transaction; callers go through the unit of work.
//
// Returns:
//   - error: repository.ErrHallHasFutureSessions if a future session exists.
//   - error: repository.ErrNotFound if the hall does not exist.
func (r *HallRepo) Resize(ctx context.Context, id int64, seatsCount int) error {
	const op = "postgres.HallRepo.Resize"

	db := r.handle()

	var hasFuture bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (
			 SELECT 1 FROM sessions
			 WHERE hall_id = $1 AND start_time > now()
		 )`,
		id,
	).Scan(&hasFuture); err != nil {
		return wrapDBErr(op, err)
	}

	if hasFuture {
		return fmt.Errorf("%s:%w", op, repository.ErrHallHasFutureSessions)
	}

	tag, err := db.Exec(ctx,
		`UPDATE halls SET seats_count = $2 WHERE id = $1`,
		id, seatsCount,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes a hall; its sessions and their tickets cascade.
func (r *HallRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.HallRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
