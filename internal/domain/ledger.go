package domain

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived financial state of a reservation.
type PaymentStatus string

const (
	StatusNotApplicable PaymentStatus = "not_applicable"
	StatusPending       PaymentStatus = "pending"
	StatusPartial       PaymentStatus = "partial"
	StatusPaid          PaymentStatus = "paid"
	StatusOverdue       PaymentStatus = "overdue"
	StatusRefunded      PaymentStatus = "refunded"
)

// Urgency is the time-pressure classification for an outstanding balance.
type Urgency string

const (
	UrgencyOnTime  Urgency = "on-time"
	UrgencyDueSoon Urgency = "due-soon"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyOverdue Urgency = "overdue"
)

// UrgencyPolicy carries the day thresholds for urgency classification.
// Callers needing different windows parameterize here instead of hard-coding
// new thresholds elsewhere.
type UrgencyPolicy struct {
	// ImminentDays: closer than this to the event, an open balance is overdue
	// no matter the formal deadline. Collecting after the event is pointless.
	ImminentDays int
	// UrgentDays and DueSoonDays bound the urgent and due-soon windows.
	UrgentDays  int
	DueSoonDays int
	// DefaultLeadDays is subtracted from the event date to form the effective
	// deadline when no explicit payment due date is set.
	DefaultLeadDays int
}

// DefaultUrgencyPolicy is the fixed production policy.
var DefaultUrgencyPolicy = UrgencyPolicy{
	ImminentDays:    7,
	UrgentDays:      14,
	DueSoonDays:     21,
	DefaultLeadDays: 7,
}

// Aggregates are the sums derived from a reservation's transaction list.
// TotalRefunded is a non-negative magnitude; Balance is paid minus refunded
// and is deliberately not clamped: a negative balance means the write-side
// gate was bypassed and must stay visible as an error state.
type Aggregates struct {
	TotalPaid     decimal.Decimal
	TotalRefunded decimal.Decimal
	Balance       decimal.Decimal
}

// Aggregate sums a reservation's transactions. An empty list yields all-zero
// aggregates. Sums are commutative, so the result does not depend on list
// order.
func Aggregate(txns []*Transaction) Aggregates {
	paid := decimal.Zero
	refunded := decimal.Zero

	for _, t := range txns {
		if t.IsRefund() {
			refunded = refunded.Add(t.Amount)
		} else {
			paid = paid.Add(t.Amount)
		}
	}

	return Aggregates{
		TotalPaid:     paid,
		TotalRefunded: refunded,
		Balance:       paid.Sub(refunded),
	}
}

// AmountDue is the positive shortfall between the contractual price and the
// current balance. Never negative.
func (a Aggregates) AmountDue(totalPrice decimal.Decimal) decimal.Decimal {
	due := totalPrice.Sub(a.Balance)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Credit is the positive surplus beyond the contractual price (over-payment
// or post-reduction surplus). Never negative.
func (a Aggregates) Credit(totalPrice decimal.Decimal) decimal.Decimal {
	credit := a.Balance.Sub(totalPrice)
	if credit.IsNegative() {
		return decimal.Zero
	}
	return credit
}

// ClassifyStatus derives the payment status from the aggregates. The rules
// are evaluated in a fixed order and are mutually exclusive by construction:
//
//  1. zero price: not_applicable (complimentary bookings carry no revenue)
//  2. all received money returned: refunded (takes precedence over paid, so
//     a fully paid then fully refunded booking never shows as paid)
//  3. nothing due: paid
//  4. something paid, something due: partial
//  5. nothing paid and the due date passed: overdue
//  6. otherwise: pending
func ClassifyStatus(totalPrice decimal.Decimal, agg Aggregates, dueDate *time.Time, now time.Time) PaymentStatus {
	if totalPrice.IsZero() {
		return StatusNotApplicable
	}

	if agg.TotalRefunded.IsPositive() && agg.TotalPaid.IsPositive() &&
		agg.TotalRefunded.GreaterThanOrEqual(agg.TotalPaid) {
		return StatusRefunded
	}

	if totalPrice.Sub(agg.Balance).LessThanOrEqual(decimal.Zero) {
		return StatusPaid
	}

	if agg.TotalPaid.IsPositive() {
		return StatusPartial
	}

	if dueDate != nil && dueDate.Before(now) {
		return StatusOverdue
	}

	return StatusPending
}

// ClassifyUrgency derives the time pressure on an outstanding balance.
// Urgency is only meaningful when money is due; refunded and not_applicable
// reservations, and anything without a shortfall, report on-time.
func ClassifyUrgency(totalPrice decimal.Decimal, agg Aggregates, status PaymentStatus, dueDate, eventDate *time.Time, now time.Time, policy UrgencyPolicy) Urgency {
	if status == StatusRefunded || status == StatusNotApplicable {
		return UrgencyOnTime
	}
	if !agg.AmountDue(totalPrice).IsPositive() {
		return UrgencyOnTime
	}

	deadline := dueDate
	if deadline == nil && eventDate != nil {
		d := eventDate.AddDate(0, 0, -policy.DefaultLeadDays)
		deadline = &d
	}
	if deadline == nil {
		// no due date and no event date: nothing to measure against
		return UrgencyOnTime
	}

	daysUntilDeadline := daysUntil(now, *deadline)

	daysUntilEvent := math.MaxInt
	if eventDate != nil {
		daysUntilEvent = daysUntil(now, *eventDate)
	}

	switch {
	case daysUntilDeadline < 0 || daysUntilEvent < policy.ImminentDays:
		return UrgencyOverdue
	case daysUntilEvent <= policy.UrgentDays:
		return UrgencyUrgent
	case daysUntilEvent <= policy.DueSoonDays:
		return UrgencyDueSoon
	default:
		return UrgencyOnTime
	}
}

// daysUntil returns ceil((t - now) / 1 day).
func daysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// Snapshot is the full derived financial state of a reservation. It has no
// lifecycle of its own: it is recomputed from the transaction list on every
// read, which eliminates stale-balance drift by construction.
type Snapshot struct {
	TotalPrice    decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalRefunded decimal.Decimal
	Balance       decimal.Decimal
	AmountDue     decimal.Decimal
	Credit        decimal.Decimal
	Status        PaymentStatus
	Urgency       Urgency

	PaymentCount int
	RefundCount  int

	// Display strings, two-decimal EUR.
	TotalPriceFormatted    string
	TotalPaidFormatted     string
	TotalRefundedFormatted string
	BalanceFormatted       string
	AmountDueFormatted     string
	CreditFormatted        string
}

// Summarize computes the full snapshot with the default urgency policy.
func Summarize(r *Reservation, now time.Time) Snapshot {
	return SummarizeWithPolicy(r, now, DefaultUrgencyPolicy)
}

// SummarizeWithPolicy computes the full snapshot under an explicit policy.
func SummarizeWithPolicy(r *Reservation, now time.Time, policy UrgencyPolicy) Snapshot {
	agg := Aggregate(r.Transactions)
	status := ClassifyStatus(r.TotalPrice, agg, r.PaymentDueDate, now)
	urgency := ClassifyUrgency(r.TotalPrice, agg, status, r.PaymentDueDate, r.EventDate, now, policy)

	amountDue := agg.AmountDue(r.TotalPrice)
	// A fully-refunded booking owes nothing; the cancelled price must not
	// resurface as an outstanding amount.
	if status == StatusRefunded {
		amountDue = decimal.Zero
	}
	credit := agg.Credit(r.TotalPrice)

	payments := 0
	refunds := 0
	for _, t := range r.Transactions {
		if t.IsRefund() {
			refunds++
		} else {
			payments++
		}
	}

	return Snapshot{
		TotalPrice:    r.TotalPrice,
		TotalPaid:     agg.TotalPaid,
		TotalRefunded: agg.TotalRefunded,
		Balance:       agg.Balance,
		AmountDue:     amountDue,
		Credit:        credit,
		Status:        status,
		Urgency:       urgency,

		PaymentCount: payments,
		RefundCount:  refunds,

		TotalPriceFormatted:    FormatEUR(r.TotalPrice),
		TotalPaidFormatted:     FormatEUR(agg.TotalPaid),
		TotalRefundedFormatted: FormatEUR(agg.TotalRefunded),
		BalanceFormatted:       FormatEUR(agg.Balance),
		AmountDueFormatted:     FormatEUR(amountDue),
		CreditFormatted:        FormatEUR(credit),
	}
}

// Timeline returns the transactions sorted newest first for display. The
// input slice is not modified.
func Timeline(txns []*Transaction) []*Transaction {
	out := make([]*Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// CreditCheck is the result of post-price-change reconciliation.
type CreditCheck struct {
	HasCredit    bool
	CreditAmount decimal.Decimal
}

// DetectCredit reports whether lowering the price below the already-held
// balance leaves the customer with a credit. Detection only: the decision to
// refund or keep the credit on account belongs to an operator, and this never
// generates a refund transaction by itself.
func DetectCredit(oldPrice, newPrice decimal.Decimal, txns []*Transaction) CreditCheck {
	balance := Aggregate(txns).Balance
	if newPrice.LessThan(balance) {
		return CreditCheck{
			HasCredit:    true,
			CreditAmount: balance.Sub(newPrice),
		}
	}

	return CreditCheck{CreditAmount: decimal.Zero}
}
