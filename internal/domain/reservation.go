package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is the financial context of a single booking. TotalPrice is the
// contractual amount owed at the current configuration; it changes when the
// arrangement, headcount or add-ons change. Transactions are kept in insertion
// order, which is the chronological order events were received in - not
// necessarily sorted by Date.
type Reservation struct {
	ID             string
	CustomerName   string
	TotalPrice     decimal.Decimal
	Transactions   []*Transaction
	PaymentDueDate *time.Time
	EventDate      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the reservation's financial invariants.
func (r *Reservation) Validate() error {
	if r.TotalPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
