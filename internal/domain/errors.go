package domain

import "errors"

var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNegativePrice       = errors.New("total price cannot be negative")

	// Transaction errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrRefundExceedsPaid = errors.New("refund exceeds available balance")
	ErrRefundNoteMissing = errors.New("refund requires a justification note")

	// Price change errors
	ErrCreditUnresolved  = errors.New("price change leaves a customer credit that requires a decision")
	ErrInvalidResolution = errors.New("invalid credit resolution")
)
