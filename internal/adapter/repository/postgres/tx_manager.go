package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/showware/resledger/internal/usecase"
)

// TxManager implements usecase.TransactionManager.
type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

type TxManager struct {
	pool    pgxPool
	retrier *Retrier
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool, logger zerolog.Logger) *TxManager {
	return newTxManagerWithPool(pool, logger)
}

func newTxManagerWithPool(pool pgxPool, logger zerolog.Logger) *TxManager {
	return &TxManager{
		pool:    pool,
		retrier: NewRetrier(logger),
	}
}

// WithinTransaction runs fn inside a database transaction, committing on
// success and rolling back on error. The whole unit is retried with a fresh
// transaction when it loses a deadlock or serialization race.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(tx usecase.Transaction) error) error {
	return m.retrier.Retry(ctx, func() error {
		tx, err := m.pool.Begin(ctx)
		if err != nil {
			return err
		}

		wrapped := &Tx{tx: tx}
		if err := fn(wrapped); err != nil {
			_ = wrapped.Rollback(ctx)
			return err
		}

		return wrapped.Commit(ctx)
	})
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
