package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapkoval/cinechain/internal/repository"
)

func TestTranslateDBErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "nil stays nil",
			in:   nil,
			want: nil,
		},
		{
			name: "no rows becomes not found",
			in:   pgx.ErrNoRows,
			want: repository.ErrNotFound,
		},
		{
			name: "wrapped no rows becomes not found",
			in:   fmt.Errorf("query: %w", pgx.ErrNoRows),
			want: repository.ErrNotFound,
		},
		{
			name: "unique violation becomes conflict",
			in:   &pgconn.PgError{Code: "23505"},
			want: repository.ErrConflict,
		},
		{
			name: "check violation becomes check violation",
			in:   &pgconn.PgError{Code: "23514"},
			want: repository.ErrCheckViolation,
		},
		{
			name: "foreign key violation becomes not found",
			in:   &pgconn.PgError{Code: "23503"},
			want: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateDBErr(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateDBErrPassesUnknownThrough(t *testing.T) {
	in := errors.New("connection reset")
	got := translateDBErr(in)
	assert.Equal(t, in, got)
}

func TestWrapDBErrKeepsSentinelInChain(t *testing.T) {
	err := wrapDBErr("postgres.TicketRepo.Sell", &pgconn.PgError{Code: "23505"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Contains(t, err.Error(), "postgres.TicketRepo.Sell")
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want bool
	}{
		{
			name: "serialization failure",
			in:   &pgconn.PgError{Code: "40001"},
			want: true,
		},
		{
			name: "deadlock detected",
			in:   &pgconn.PgError{Code: "40P01"},
			want: true,
		},
		{
			name: "wrapped serialization failure",
			in:   fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40001"}),
			want: true,
		},
		{
			name: "unique violation is not retryable",
			in:   &pgconn.PgError{Code: "23505"},
			want: false,
		},
		{
			name: "plain error is not retryable",
			in:   errors.New("boom"),
			want: false,
		},
		{
			name: "nil is not retryable",
			in:   nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.in))
		})
	}
}
