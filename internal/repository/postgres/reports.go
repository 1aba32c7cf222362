package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostapkoval/cinechain/internal/domain"
)

type ReportRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReportRepo) With(db DB) *ReportRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ReportRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// FreeSeatsCount returns the session hall's capacity minus its sold
// tickets. A missing session or hall coalesces to zero rather than an
// error.
func (r *ReportRepo) FreeSeatsCount(ctx context.Context, sessionID int64) (int, error) {
	const op = "postgres.ReportRepo.FreeSeatsCount"

	db := r.handle()

	var free int
	err := db.QueryRow(ctx,
		`SELECT COALESCE((
		 	SELECT h.seats_count
		 	FROM sessions s
		 	JOIN halls h ON h.id = s.hall_id
		 	WHERE s.id = $1
		 ), 0) - COALESCE((
		 	SELECT COUNT(*)
		 	FROM tickets
		 	WHERE session_id = $1 AND is_sold
		 ), 0)`,
		sessionID,
	).Scan(&free)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return free, nil
}

// CinemaRevenue sums the session price of every sold ticket in the
// cinema's halls: revenue counts per sold ticket at its session's price,
// not per session.
func (r *ReportRepo) CinemaRevenue(ctx context.Context, cinemaID int64) (float64, error) {
	const op = "postgres.ReportRepo.CinemaRevenue"

	db := r.handle()

	var revenue float64
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(s.price), 0)
		 FROM tickets t
		 JOIN sessions s ON s.id = t.session_id
		 JOIN halls h ON h.id = s.hall_id
		 WHERE h.cinema_id = $1 AND t.is_sold`,
		cinemaID,
	).Scan(&revenue)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return revenue, nil
}

// SessionDetails reads the denormalized schedule view. The view is
// recomputed per query; nothing is materialized.
func (r *ReportRepo) SessionDetails(ctx context.Context) ([]domain.SessionDetails, error) {
	const op = "postgres.ReportRepo.SessionDetails"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT session_id, movie_title, hall_name, start_time, price
		 FROM session_details
		 ORDER BY start_time, session_id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.SessionDetails
	for rows.Next() {
		var d domain.SessionDetails
		if err := rows.Scan(
			&d.SessionID,
			&d.MovieTitle,
			&d.HallName,
			&d.StartTime,
			&d.Price,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// MovieStats reads the per-movie session counts, including movies with no
// sessions.
func (r *ReportRepo) MovieStats(ctx context.Context) ([]domain.MovieStats, error) {
	const op = "postgres.ReportRepo.MovieStats"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT movie_id, title, session_count
		 FROM movie_stats
		 ORDER BY title, movie_id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.MovieStats
	for rows.Next() {
		var st domain.MovieStats
		if err := rows.Scan(&st.MovieID, &st.Title, &st.SessionCount); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
