package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
)

// ReservationRepository defines data access for reservations. Reads always
// return the reservation with its full transaction list attached, because the
// financial snapshot is recomputed from the list on every read.
type ReservationRepository interface {
	Create(ctx context.Context, tx Transaction, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	// GetByIDForUpdate locks the reservation row so concurrent appends to the
	// same transaction list serialize at the store.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Reservation, error)
	UpdatePrice(ctx context.Context, tx Transaction, id string, price decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Reservation, error)
}

// TransactionRepository defines data access for ledger transactions. The list
// is append-only: there is no update or delete.
type TransactionRepository interface {
	Append(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByReservation(ctx context.Context, reservationID string) ([]*domain.Transaction, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager runs a unit of work inside a database transaction.
// The implementation owns commit, rollback and retry; fn only sees the
// transaction handle it must thread through repository calls.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(tx Transaction) error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
