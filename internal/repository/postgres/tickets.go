package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostapkoval/cinechain/internal/domain"
	"github.com/ostapkoval/cinechain/internal/repository"
)

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketRepo) With(db DB) *TicketRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Sell inserts a sold ticket for the given seat. The past-session guard and
// the insert run in the same transaction; the double-booking rule itself is
// the partial unique index on sold tickets, so the conflict check is atomic
// with the write no matter how the check query interleaves.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - sessionID: the session being sold for.
//   - row, seatNumber: physical seat coordinates inside the hall.
//
// Returns:
//   - *domain.Ticket: the created sale record.
//   - error: repository.ErrNotFound if the session does not exist.
//   - error: repository.ErrSessionStarted if the session start time has passed.
//   - error: repository.ErrConflict if the seat is already sold.
func (r *TicketRepo) Sell(ctx context.Context, sessionID int64, row, seatNumber int) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.Sell"

	if r.db != nil {
		t, err := r.sellCore(ctx, r.db, sessionID, row, seatNumber)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		return t, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer tx.Rollback(ctx)

	t, err := r.sellCore(ctx, tx, sessionID, row, seatNumber)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return t, nil
}

func (r *TicketRepo) sellCore(
	ctx context.Context,
	db DB,
	sessionID int64,
	row, seatNumber int,
) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.sellCore"

	// The comparison runs on the database clock, same as the resize guard,
	// so the two temporal rules cannot disagree under clock skew.
	var started bool
	if err := db.QueryRow(ctx,
		`SELECT start_time < now() FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&started); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if started {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrSessionStarted)
	}

	t := domain.Ticket{
		SessionID:  sessionID,
		Row:        row,
		SeatNumber: seatNumber,
		IsSold:     true,
	}
	if err := db.QueryRow(ctx,
		`INSERT INTO tickets(session_id, seat_row, seat_number, is_sold)
       	 VALUES ($1, $2, $3, TRUE)
     	 RETURNING id`,
		sessionID, row, seatNumber,
	).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &t, nil
}
