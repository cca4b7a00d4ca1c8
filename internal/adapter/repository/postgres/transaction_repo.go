package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// rowQuerier is the subset of pgx shared by pools and transactions.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// TransactionRepository implements usecase.TransactionRepository. The table
// is append-only: rows are never updated or deleted.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, reservation_id, type, amount, date, method, reference, note, processed_by, created_at`

// Append inserts a new ledger transaction inside the given transaction.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.ReservationID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		timeToPgTimestamptz(txn.Date),
		string(txn.Method),
		txn.Reference,
		txn.Note,
		txn.ProcessedBy,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByReservation retrieves all transactions for a reservation in insertion
// order.
func (r *TransactionRepository) ListByReservation(ctx context.Context, reservationID string) ([]*domain.Transaction, error) {
	return queryTransactions(ctx, r.pool, reservationID)
}

func queryTransactions(ctx context.Context, q rowQuerier, reservationID string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reservation_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var (
			txn       domain.Transaction
			typ       string
			amount    pgtype.Numeric
			date      pgtype.Timestamptz
			method    string
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&txn.ID,
			&txn.ReservationID,
			&typ,
			&amount,
			&date,
			&method,
			&txn.Reference,
			&txn.Note,
			&txn.ProcessedBy,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		txn.Type = domain.TransactionType(typ)
		txn.Amount = numericToDecimal(amount)
		txn.Date = date.Time
		txn.Method = domain.PaymentMethod(method)
		txn.CreatedAt = createdAt.Time

		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
