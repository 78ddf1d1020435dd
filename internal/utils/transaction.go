package utils

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"server-sst/internal/interfaces"
	"server-sst/internal/schemas"
)

// BeginTransaction begins a new database transaction on a dedicated pooled
// connection. If the connection cannot be acquired within the pool's bound, it
// reports PoolTimeout; any other failure reports the generic database error.
// Returns nil if the transaction could not be started, with the response
// already written.
func BeginTransaction(ctx *gin.Context, pool interfaces.PgxPoolIface) pgx.Tx {
	LogMessageWithFields(ctx, "debug", "Beginning transaction...")

	tx, err := pool.Begin(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			WriteAndLogError(ctx, schemas.PoolTimeout, err)
			return nil
		}
		WriteAndLogError(ctx, schemas.DatabaseError, err)
		return nil
	}

	return tx
}

// RollbackTransaction rolls back the given transaction. Deferred by every unit
// of work so the connection always returns to the pool; a rollback after a
// successful commit is a no-op that pgx reports as ErrTxClosed.
func RollbackTransaction(ctx *gin.Context, tx pgx.Tx) {
	err := tx.Rollback(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return
		}
		LogMessageWithFieldsAndError(ctx, "error", "Error rolling back transaction", err)
		return
	}
	LogMessageWithFields(ctx, "debug", "Transaction rolled back")
}

// CommitTransaction attempts to commit the given transaction. If the commit
// fails it writes the generic database error and returns the failure.
func CommitTransaction(ctx *gin.Context, tx pgx.Tx) error {
	LogMessageWithFields(ctx, "debug", "Committing transaction...")

	if err := tx.Commit(ctx); err != nil {
		LogMessageWithFieldsAndError(ctx, "error", "Error committing transaction", err)
		WriteAndLogError(ctx, schemas.DatabaseError, err)
		return err
	}

	LogMessageWithFields(ctx, "debug", "Transaction committed")
	return nil
}
