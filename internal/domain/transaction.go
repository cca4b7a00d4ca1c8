package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates payments from refunds.
type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionRefund  TransactionType = "refund"
)

// PaymentMethod is the channel money moved through.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
	MethodOnline       PaymentMethod = "online"
	MethodVoucher      PaymentMethod = "voucher"
	MethodInvoice      PaymentMethod = "invoice"
	MethodOther        PaymentMethod = "other"
)

var validMethods = map[PaymentMethod]bool{
	MethodBankTransfer: true,
	MethodCard:         true,
	MethodCash:         true,
	MethodOnline:       true,
	MethodVoucher:      true,
	MethodInvoice:      true,
	MethodOther:        true,
}

// Transaction is a single payment or refund on a reservation's ledger.
// Amount is always a positive magnitude; Type carries the sign. A transaction
// is never mutated or deleted after creation - corrections are made by
// appending an offsetting transaction.
type Transaction struct {
	ID            string
	ReservationID string
	Type          TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	Method        PaymentMethod
	Reference     string
	Note          string
	ProcessedBy   string
	CreatedAt     time.Time
}

// IsRefund reports whether the transaction returns money to the customer.
func (t *Transaction) IsRefund() bool {
	return t.Type == TransactionRefund
}

// Signed returns the amount with the sign applied: positive for payments,
// negative for refunds.
func (t *Transaction) Signed() decimal.Decimal {
	if t.IsRefund() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ValidateMethod checks the payment channel.
func ValidateMethod(method PaymentMethod) error {
	if !validMethods[method] {
		return ErrInvalidMethod
	}
	return nil
}

// ValidateType checks the transaction type discriminator.
func ValidateType(typ TransactionType) error {
	if typ != TransactionPayment && typ != TransactionRefund {
		return ErrInvalidType
	}
	return nil
}
