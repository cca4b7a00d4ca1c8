package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// CreateReservationRequest represents a request to create a reservation.
type CreateReservationRequest struct {
	CustomerName   string          `json:"customer_name"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	PaymentDueDate *time.Time      `json:"payment_due_date,omitempty"`
	EventDate      *time.Time      `json:"event_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReservationRequest) ToUseCaseInput(actor string) usecase.CreateReservationInput {
	return usecase.CreateReservationInput{
		CustomerName:   r.CustomerName,
		TotalPrice:     r.TotalPrice,
		PaymentDueDate: r.PaymentDueDate,
		EventDate:      r.EventDate,
		Actor:          actor,
	}
}

// RegisterTransactionRequest represents a request to register a payment or a
// refund on a reservation's ledger. Amount is a positive magnitude for both.
type RegisterTransactionRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Date      *time.Time      `json:"date,omitempty"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterTransactionRequest) ToUseCaseInput(reservationID, actor string) usecase.RegisterTransactionInput {
	input := usecase.RegisterTransactionInput{
		ReservationID: reservationID,
		Amount:        r.Amount,
		Method:        domain.PaymentMethod(r.Method),
		Reference:     r.Reference,
		Note:          r.Note,
		Actor:         actor,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// ChangePriceRequest represents a request to change a reservation's total
// price. Resolution is required only when the new price leaves the customer
// with a credit.
type ChangePriceRequest struct {
	NewPrice     decimal.Decimal `json:"new_price"`
	Resolution   string          `json:"resolution,omitempty"`
	RefundMethod string          `json:"refund_method,omitempty"`
	RefundNote   string          `json:"refund_note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ChangePriceRequest) ToUseCaseInput(reservationID, actor string) usecase.ChangePriceInput {
	return usecase.ChangePriceInput{
		ReservationID: reservationID,
		NewPrice:      r.NewPrice,
		Resolution:    usecase.CreditResolution(r.Resolution),
		RefundMethod:  domain.PaymentMethod(r.RefundMethod),
		RefundNote:    r.RefundNote,
		Actor:         actor,
	}
}
