package pictor

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of the pgx pool API this service uses. *pgxpool.Pool
// satisfies it; tests substitute a fake.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxError carries the HTTP status a failed transaction step maps to.
type TxError struct {
	Code int
	Err  error
}

type TxFunc func(tx pgx.Tx) *TxError

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back on any error.
func WithTransaction(ctx context.Context, db Querier, fn TxFunc) *TxError {
	tx, err := db.Begin(ctx)
	if err != nil {
		return &TxError{Code: http.StatusInternalServerError, Err: err}
	}
	defer tx.Rollback(ctx)

	if txErr := fn(tx); txErr != nil {
		return txErr
	}

	if err := tx.Commit(ctx); err != nil {
		return &TxError{Code: http.StatusInternalServerError, Err: err}
	}
	return nil
}
