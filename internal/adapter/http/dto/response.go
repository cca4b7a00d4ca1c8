package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// SnapshotResponse represents the derived financial state of a reservation.
// It is recomputed from the transaction list on every read.
type SnapshotResponse struct {
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalRefunded decimal.Decimal `json:"total_refunded"`
	Balance       decimal.Decimal `json:"balance"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Credit        decimal.Decimal `json:"credit"`
	Status        string          `json:"status"`
	Urgency       string          `json:"urgency"`
	PaymentCount  int             `json:"payment_count"`
	RefundCount   int             `json:"refund_count"`

	TotalPriceFormatted    string `json:"total_price_formatted"`
	TotalPaidFormatted     string `json:"total_paid_formatted"`
	TotalRefundedFormatted string `json:"total_refunded_formatted"`
	BalanceFormatted       string `json:"balance_formatted"`
	AmountDueFormatted     string `json:"amount_due_formatted"`
	CreditFormatted        string `json:"credit_formatted"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		TotalPrice:    s.TotalPrice,
		TotalPaid:     s.TotalPaid,
		TotalRefunded: s.TotalRefunded,
		Balance:       s.Balance,
		AmountDue:     s.AmountDue,
		Credit:        s.Credit,
		Status:        string(s.Status),
		Urgency:       string(s.Urgency),
		PaymentCount:  s.PaymentCount,
		RefundCount:   s.RefundCount,

		TotalPriceFormatted:    s.TotalPriceFormatted,
		TotalPaidFormatted:     s.TotalPaidFormatted,
		TotalRefundedFormatted: s.TotalRefundedFormatted,
		BalanceFormatted:       s.BalanceFormatted,
		AmountDueFormatted:     s.AmountDueFormatted,
		CreditFormatted:        s.CreditFormatted,
	}
}

// ReservationResponse represents a reservation in API responses.
type ReservationResponse struct {
	ID             string            `json:"id"`
	CustomerName   string            `json:"customer_name"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	PaymentDueDate *time.Time        `json:"payment_due_date,omitempty"`
	EventDate      *time.Time        `json:"event_date,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Snapshot       *SnapshotResponse `json:"snapshot,omitempty"`
}

// ReservationFromDomain converts a domain reservation to a response without a
// snapshot.
func ReservationFromDomain(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		TotalPrice:     r.TotalPrice,
		PaymentDueDate: r.PaymentDueDate,
		EventDate:      r.EventDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ReservationWithSnapshotFromUseCase converts a reservation plus its derived
// state to a response.
func ReservationWithSnapshotFromUseCase(rs *usecase.ReservationWithSnapshot) *ReservationResponse {
	resp := ReservationFromDomain(rs.Reservation)
	snapshot := SnapshotFromDomain(rs.Snapshot)
	resp.Snapshot = &snapshot
	return resp
}

// ListReservationsResponse represents a page of reservations.
type ListReservationsResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int64                  `json:"total"`
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	ReservationID   string          `json:"reservation_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	AmountFormatted string          `json:"amount_formatted"`
	Date            time.Time       `json:"date"`
	Method          string          `json:"method"`
	Reference       string          `json:"reference,omitempty"`
	Note            string          `json:"note,omitempty"`
	ProcessedBy     string          `json:"processed_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		ReservationID:   t.ReservationID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		AmountFormatted: domain.FormatEUR(t.Amount),
		Date:            t.Date,
		Method:          string(t.Method),
		Reference:       t.Reference,
		Note:            t.Note,
		ProcessedBy:     t.ProcessedBy,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// RegisterTransactionResponse is the appended transaction plus the fresh
// snapshot.
type RegisterTransactionResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Snapshot    SnapshotResponse     `json:"snapshot"`
}

// PriceChangeResponse reports a completed price change.
type PriceChangeResponse struct {
	Reservation       *ReservationResponse `json:"reservation"`
	Snapshot          SnapshotResponse     `json:"snapshot"`
	RefundTransaction *TransactionResponse `json:"refund_transaction,omitempty"`
}

// CreditConflictResponse is returned when a price change would leave the
// customer with a credit and the request carried no resolution.
type CreditConflictResponse struct {
	Error                 string          `json:"error"`
	Message               string          `json:"message"`
	CreditAmount          decimal.Decimal `json:"credit_amount"`
	CreditAmountFormatted string          `json:"credit_amount_formatted"`
	Resolutions           []string        `json:"resolutions"`
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	Actor        string         `json:"actor"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	RequestID    string         `json:"request_id,omitempty"`
	AfterState   map[string]any `json:"after_state,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			Actor:        l.Actor,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			RequestID:    l.RequestID,
			AfterState:   l.AfterState,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
