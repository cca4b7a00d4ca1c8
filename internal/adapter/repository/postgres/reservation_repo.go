package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// ReservationRepository implements usecase.ReservationRepository. Every read
// attaches the full transaction list because financial state is derived from
// it on demand, never stored.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository creates a new ReservationRepository.
func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationColumns = `id, customer_name, total_price, payment_due_date, event_date, created_at, updated_at`

// Create inserts a new reservation inside the given transaction.
func (r *ReservationRepository) Create(ctx context.Context, tx usecase.Transaction, reservation *domain.Reservation) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		reservation.ID,
		reservation.CustomerName,
		decimalToNumeric(reservation.TotalPrice),
		timePtrToPgTimestamptz(reservation.PaymentDueDate),
		timePtrToPgTimestamptz(reservation.EventDate),
		timeToPgTimestamptz(reservation.CreatedAt),
		timeToPgTimestamptz(reservation.UpdatedAt),
	)

	return err
}

// GetByID retrieves a reservation with its transactions.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	reservation.Transactions, err = queryTransactions(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// GetByIDForUpdate retrieves a reservation with a FOR UPDATE lock so
// concurrent appends to the same ledger serialize at the row.
func (r *ReservationRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Reservation, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	reservation, err := scanReservation(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	reservation.Transactions, err = queryTransactions(ctx, pgxTx, id)
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// UpdatePrice sets a new total price inside the given transaction.
func (r *ReservationRepository) UpdatePrice(ctx context.Context, tx usecase.Transaction, id string, price decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE reservations SET total_price = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(price), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

// List retrieves reservations newest first, each with its transactions.
func (r *ReservationRepository) List(ctx context.Context, limit, offset int) ([]*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, reservation := range reservations {
		reservation.Transactions, err = queryTransactions(ctx, r.pool, reservation.ID)
		if err != nil {
			return nil, err
		}
	}

	return reservations, nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		price       pgtype.Numeric
		dueDate     pgtype.Timestamptz
		eventDate   pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.CustomerName,
		&price,
		&dueDate,
		&eventDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.TotalPrice = numericToDecimal(price)
	reservation.PaymentDueDate = pgTimestamptzToTimePtr(dueDate)
	reservation.EventDate = pgTimestamptzToTimePtr(eventDate)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
