package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostapkoval/cinechain/internal/domain"
	"github.com/ostapkoval/cinechain/internal/repository"
)

type CinemaRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CinemaRepo) With(db DB) *CinemaRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CinemaRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *CinemaRepo) Create(ctx context.Context, city, address, email string) (int64, error) {
	const op = "postgres.CinemaRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO cinemas(city, address, email)
       	 VALUES ($1, $2, $3)
     	 RETURNING id`,
		city, address, email,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// List returns cinemas with an optional case-insensitive filter matching
// the city or address as a substring. A blank filter matches everything.
func (r *CinemaRepo) List(ctx context.Context, filter string) ([]domain.Cinema, error) {
	const op = "postgres.CinemaRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, COALESCE(city, ''), COALESCE(address, ''), COALESCE(email, '')
		 FROM cinemas
		 WHERE $1::text = ''
		    OR city ILIKE '%' || $1::text || '%'
		    OR address ILIKE '%' || $1::text || '%'
		 ORDER BY id`,
		filter,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Cinema
	for rows.Next() {
		var c domain.Cinema
		if err := rows.Scan(&c.ID, &c.City, &c.Address, &c.Email); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// GetWithHalls retrieves a cinema together with all of its halls.
//
// Returns:
//   - *domain.CinemaWithHalls: the cinema with its halls (possibly empty).
//   - error: repository.ErrNotFound if the cinema does not exist.
func (r *CinemaRepo) GetWithHalls(ctx context.Context, id int64) (*domain.CinemaWithHalls, error) {
	const op = "postgres.CinemaRepo.GetWithHalls"

	db := r.handle()

	var out domain.CinemaWithHalls
	err := db.QueryRow(ctx,
		`SELECT id, COALESCE(city, ''), COALESCE(address, ''), COALESCE(email, '')
		 FROM cinemas WHERE id = $1`,
		id,
	).Scan(&out.ID, &out.City, &out.Address, &out.Email)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, cinema_id, name, seats_count
		 FROM halls
		 WHERE cinema_id = $1
		 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var h domain.Hall
		if err := rows.Scan(&h.ID, &h.CinemaID, &h.Name, &h.SeatsCount); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out.Halls = append(out.Halls, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}

// Update applies a partial update: a blank field keeps the stored value.
// There is deliberately no way to clear a field back to empty.
//
// Returns:
//   - error: repository.ErrNotFound if the cinema does not exist.
func (r *CinemaRepo) Update(ctx context.Context, id int64, city, address, email string) error {
	const op = "postgres.CinemaRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE cinemas
		 SET city    = COALESCE(NULLIF($2, ''), city),
		     address = COALESCE(NULLIF($3, ''), address),
		     email   = COALESCE(NULLIF($4, ''), email)
		 WHERE id = $1`,
		id, city, address, email,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes a cinema; halls, their sessions and tickets go with it
// through the FK cascade.
func (r *CinemaRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.CinemaRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM cinemas WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
