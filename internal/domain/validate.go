package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidatePayment gates a proposed payment before it is appended to the
// ledger. No upper bound is enforced: overpayment is allowed and surfaces as
// credit rather than being silently rejected.
func ValidatePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateRefund gates a proposed refund before it is appended. A refund can
// never exceed what is currently held (paid minus already refunded), and it
// always carries a justification note so the audit trail records why money
// was returned. Rejected refunds are never constructed; the caller re-prompts.
func ValidateRefund(agg Aggregates, amount decimal.Decimal, note string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	available := agg.TotalPaid.Sub(agg.TotalRefunded)
	if amount.GreaterThan(available) {
		return fmt.Errorf("%w: %s available", ErrRefundExceedsPaid, FormatEUR(available))
	}

	if strings.TrimSpace(note) == "" {
		return ErrRefundNoteMissing
	}

	return nil
}

// ValidateTransaction is the single write-side gate: every code path that
// appends a transaction goes through here. It returns nil when the proposed
// transaction may be constructed.
func ValidateTransaction(r *Reservation, typ TransactionType, amount decimal.Decimal, note string) error {
	if err := ValidateType(typ); err != nil {
		return err
	}

	if typ == TransactionRefund {
		return ValidateRefund(Aggregate(r.Transactions), amount, note)
	}

	return ValidatePayment(amount)
}
