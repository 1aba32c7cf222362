package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostapkoval/cinechain/internal/domain"
	"github.com/ostapkoval/cinechain/internal/repository"
)

type MovieRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *MovieRepo) With(db DB) *MovieRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *MovieRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a movie.
//
// Returns:
//   - int64: the new movie ID.
//   - error: repository.ErrCheckViolation when duration <= 0.
func (r *MovieRepo) Create(
	ctx context.Context,
	title string,
	duration, ageRestriction int,
	releaseDate time.Time,
	description string,
) (int64, error) {
	const op = "postgres.MovieRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO movies(title, duration, age_restriction, release_date, description)
       	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING id`,
		title, duration, ageRestriction, releaseDate, description,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// Get retrieves a movie together with its genres.
//
// Returns:
//   - *domain.MovieWithGenres: the movie with its genres (possibly empty).
//   - error: repository.ErrNotFound if the movie does not exist.
func (r *MovieRepo) Get(ctx context.Context, id int64) (*domain.MovieWithGenres, error) {
	const op = "postgres.MovieRepo.Get"

	db := r.handle()

	var out domain.MovieWithGenres
	err := db.QueryRow(ctx,
		`SELECT id, title, duration, age_restriction, release_date, COALESCE(description, '')
		 FROM movies WHERE id = $1`,
		id,
	).Scan(
		&out.ID,
		&out.Title,
		&out.Duration,
		&out.AgeRestriction,
		&out.ReleaseDate,
		&out.Description,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT g.id, g.name
		 FROM movie_genres mg
		 JOIN genres g ON g.id = mg.genre_id
		 WHERE mg.movie_id = $1
		 ORDER BY g.name`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out.Genres = append(out.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}

// Search returns one page of movies with an optional case-insensitive title
// filter, plus the total match count for pagination.
func (r *MovieRepo) Search(
	ctx context.Context,
	titleFilter string,
	limit, offset int,
) (*domain.MoviePage, error) {
	const op = "postgres.MovieRepo.Search"

	db := r.handle()

	var page domain.MoviePage
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM movies
		 WHERE $1::text = '' OR title ILIKE '%' || $1::text || '%'`,
		titleFilter,
	).Scan(&page.Total); err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, title, duration, age_restriction, release_date, COALESCE(description, '')
		 FROM movies
		 WHERE $1::text = '' OR title ILIKE '%' || $1::text || '%'
		 ORDER BY title, id
		 LIMIT $2 OFFSET $3`,
		titleFilter, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Duration,
			&m.AgeRestriction,
			&m.ReleaseDate,
			&m.Description,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		page.Movies = append(page.Movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &page, nil
}

// Update applies a partial update: blank strings and nil numbers keep the
// stored values.
//
// Returns:
//   - error: repository.ErrNotFound if the movie does not exist.
//   - error: repository.ErrCheckViolation when the new duration <= 0.
func (r *MovieRepo) Update(
	ctx context.Context,
	id int64,
	title string,
	duration, ageRestriction *int,
	releaseDate *time.Time,
	description string,
) error {
	const op = "postgres.MovieRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE movies
		 SET title           = COALESCE(NULLIF($2, ''), title),
		     duration        = COALESCE($3, duration),
		     age_restriction = COALESCE($4, age_restriction),
		     release_date    = COALESCE($5, release_date),
		     description     = COALESCE(NULLIF($6, ''), description)
		 WHERE id = $1`,
		id, title, duration, ageRestriction, releaseDate, description,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes a movie; its sessions, their tickets and the genre links
// cascade.
func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.MovieRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *MovieRepo) CreateGenre(ctx context.Context, name string) (int64, error) {
	const op = "postgres.MovieRepo.CreateGenre"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO genres(name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *MovieRepo) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	const op = "postgres.MovieRepo.ListGenres"

	db := r.handle()

	rows, err := db.Query(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *MovieRepo) DeleteGenre(ctx context.Context, id int64) error {
	const op = "postgres.MovieRepo.DeleteGenre"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// LinkGenre attaches a genre to a movie.
//
// Returns:
//   - error: repository.ErrConflict if the link already exists.
//   - error: repository.ErrNotFound if the movie or genre does not exist.
func (r *MovieRepo) LinkGenre(ctx context.Context, movieID, genreID int64) error {
	const op = "postgres.MovieRepo.LinkGenre"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO movie_genres(movie_id, genre_id) VALUES ($1, $2)`,
		movieID, genreID,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *MovieRepo) UnlinkGenre(ctx context.Context, movieID, genreID int64) error {
	const op = "postgres.MovieRepo.UnlinkGenre"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`DELETE FROM movie_genres WHERE movie_id = $1 AND genre_id = $2`,
		movieID, genreID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
