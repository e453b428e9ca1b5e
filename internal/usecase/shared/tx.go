package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTransactionBegin   = errs.New("failed to begin transaction")
	ErrTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxRunner runs a function inside a database transaction. Commands
// depend on this interface rather than the pool so unit tests can
// substitute a pass-through runner.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx infra.DBTX) error) error
}

type PgxTxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
}

func NewPgxTxRunner(pool *pgxpool.Pool) *PgxTxRunner {
	return &PgxTxRunner{pool: pool, maxRetries: 3}
}

// RunInTx retries on serialization failures and deadlocks with a short
// linear backoff; any other error aborts immediately.
func (r *PgxTxRunner) RunInTx(ctx context.Context, fn func(tx infra.DBTX) error) error {
	for attempt := 0; ; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return err
		}

		if attempt == r.maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err)
			return errs.Mark(err, ErrMaxRetriesExceeded)
		}

		waitTime := time.Duration(attempt+1) * 100 * time.Millisecond
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

func (r *PgxTxRunner) runOnce(ctx context.Context, fn func(tx infra.DBTX) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrTransactionCommit)
	}

	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	// 40001: serialization_failure, 40P01: deadlock_detected
	switch pgErr.Code {
	case "40001", "40P01":
		return true
	default:
		return false
	}
}
