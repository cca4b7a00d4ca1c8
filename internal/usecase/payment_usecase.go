package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/infrastructure/metrics"
)

// PaymentUseCase registers payments and refunds against a reservation's
// ledger. Every append goes through the domain validator; rejected
// transactions are never constructed.
type PaymentUseCase struct {
	txManager       TransactionManager
	reservationRepo ReservationRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	reservationRepo ReservationRepository,
	transactionRepo TransactionRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:       txManager,
		reservationRepo: reservationRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		metrics:         m,
	}
}

// RegisterTransactionInput represents a proposed payment or refund. Actor is
// threaded from the transport layer; there is no ambient current-user global.
type RegisterTransactionInput struct {
	ReservationID string
	Type          domain.TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	Method        domain.PaymentMethod
	Reference     string
	Note          string
	Actor         string
}

// RegisterResult is the appended transaction plus the fresh snapshot.
type RegisterResult struct {
	Transaction *domain.Transaction
	Snapshot    domain.Snapshot
}

// RegisterPayment validates and appends a payment.
func (uc *PaymentUseCase) RegisterPayment(ctx context.Context, input RegisterTransactionInput) (*RegisterResult, error) {
	input.Type = domain.TransactionPayment
	return uc.register(ctx, input)
}

// RegisterRefund validates and appends a refund. The justification note is
// mandatory.
func (uc *PaymentUseCase) RegisterRefund(ctx context.Context, input RegisterTransactionInput) (*RegisterResult, error) {
	input.Type = domain.TransactionRefund
	return uc.register(ctx, input)
}

func (uc *PaymentUseCase) register(ctx context.Context, input RegisterTransactionInput) (*RegisterResult, error) {
	if err := domain.ValidateMethod(input.Method); err != nil {
		uc.recordValidationFailure(err)
		return nil, err
	}

	now := time.Now().UTC()

	var (
		reservation *domain.Reservation
		txn         *domain.Transaction
	)
	err := uc.txManager.WithinTransaction(ctx, func(tx Transaction) error {
		var err error
		reservation, err = uc.reservationRepo.GetByIDForUpdate(ctx, tx, input.ReservationID)
		if err != nil {
			return err
		}

		if err := domain.ValidateTransaction(reservation, input.Type, input.Amount, input.Note); err != nil {
			uc.recordValidationFailure(err)
			return err
		}

		date := input.Date
		if date.IsZero() {
			date = now
		}

		txn = &domain.Transaction{
			ID:            uc.idGen.Generate(),
			ReservationID: reservation.ID,
			Type:          input.Type,
			Amount:        input.Amount,
			Date:          date,
			Method:        input.Method,
			Reference:     input.Reference,
			Note:          input.Note,
			ProcessedBy:   input.Actor,
			CreatedAt:     now,
		}

		return uc.transactionRepo.Append(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	reservation.Transactions = append(reservation.Transactions, txn)

	uc.audit(ctx, txn, input.Actor)
	uc.recordRegistered(txn)

	return &RegisterResult{
		Transaction: txn,
		Snapshot:    domain.Summarize(reservation, now),
	}, nil
}

func (uc *PaymentUseCase) audit(ctx context.Context, txn *domain.Transaction, actor string) {
	if uc.auditRepo == nil {
		return
	}

	action := domain.AuditActionPaymentRegister
	if txn.IsRefund() {
		action = domain.AuditActionRefundRegister
	}

	// Audit writes are best-effort: the transaction itself already committed.
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		Actor:        actor,
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   txn.ID,
		AfterState: domain.JSON{
			"reservation_id": txn.ReservationID,
			"type":           txn.Type,
			"amount":         txn.Amount.String(),
			"method":         txn.Method,
			"note":           txn.Note,
		},
		Status:    string(domain.AuditStatusSuccess),
		CreatedAt: time.Now().UTC(),
	})
}

func (uc *PaymentUseCase) recordRegistered(txn *domain.Transaction) {
	if uc.metrics == nil {
		return
	}
	amount, _ := txn.Amount.Float64()
	if txn.IsRefund() {
		uc.metrics.RefundsRegistered.Inc()
		uc.metrics.RefundAmount.Observe(amount)
	} else {
		uc.metrics.PaymentsRegistered.Inc()
		uc.metrics.PaymentAmount.Observe(amount)
	}
}

func (uc *PaymentUseCase) recordValidationFailure(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ValidationFailures.WithLabelValues(validationReason(err)).Inc()
}

func validationReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrRefundExceedsPaid):
		return "refund_exceeds_paid"
	case errors.Is(err, domain.ErrRefundNoteMissing):
		return "refund_note_missing"
	case errors.Is(err, domain.ErrInvalidMethod):
		return "invalid_method"
	case errors.Is(err, domain.ErrInvalidType):
		return "invalid_type"
	default:
		return "other"
	}
}
