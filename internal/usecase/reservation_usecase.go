package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/infrastructure/metrics"
)

// CreditResolution is the operator's decision when a price change leaves the
// customer with a credit.
type CreditResolution string

const (
	ResolutionKeepCredit CreditResolution = "keep_credit"
	ResolutionRefundNow  CreditResolution = "refund_now"
)

// ReservationUseCase handles reservation lifecycle and the price-change
// reconciliation checkpoint.
type ReservationUseCase struct {
	txManager       TransactionManager
	reservationRepo ReservationRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewReservationUseCase creates a new ReservationUseCase.
func NewReservationUseCase(
	txManager TransactionManager,
	reservationRepo ReservationRepository,
	transactionRepo TransactionRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ReservationUseCase {
	return &ReservationUseCase{
		txManager:       txManager,
		reservationRepo: reservationRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		metrics:         m,
	}
}

// CreateReservationInput represents input for creating a reservation.
type CreateReservationInput struct {
	CustomerName   string
	TotalPrice     decimal.Decimal
	PaymentDueDate *time.Time
	EventDate      *time.Time
	Actor          string
}

// CreateReservation creates a new reservation with an empty ledger.
func (uc *ReservationUseCase) CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	now := time.Now().UTC()

	reservation := &domain.Reservation{
		ID:             uc.idGen.Generate(),
		CustomerName:   input.CustomerName,
		TotalPrice:     input.TotalPrice,
		PaymentDueDate: input.PaymentDueDate,
		EventDate:      input.EventDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := reservation.Validate(); err != nil {
		return nil, err
	}

	err := uc.txManager.WithinTransaction(ctx, func(tx Transaction) error {
		return uc.reservationRepo.Create(ctx, tx, reservation)
	})
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionReservationCreate, reservation.ID, input.Actor, domain.JSON{
		"customer":    reservation.CustomerName,
		"total_price": reservation.TotalPrice.String(),
	})

	return reservation, nil
}

// ReservationWithSnapshot pairs a reservation with its derived financial
// state.
type ReservationWithSnapshot struct {
	Reservation *domain.Reservation
	Snapshot    domain.Snapshot
}

// GetReservation retrieves a reservation with a freshly computed snapshot.
func (uc *ReservationUseCase) GetReservation(ctx context.Context, id string) (*ReservationWithSnapshot, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ReservationWithSnapshot{
		Reservation: reservation,
		Snapshot:    domain.Summarize(reservation, time.Now().UTC()),
	}, nil
}

// GetTimeline returns the reservation's transactions sorted newest first.
func (uc *ReservationUseCase) GetTimeline(ctx context.Context, id string) ([]*domain.Transaction, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.Timeline(reservation.Transactions), nil
}

// GetAuditTrail returns the audit history of a reservation, newest first.
func (uc *ReservationUseCase) GetAuditTrail(ctx context.Context, id string, limit int) ([]*domain.AuditLog, error) {
	if _, err := uc.reservationRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 100
	}

	return uc.auditRepo.ListByResource(ctx, "reservation", id, limit)
}

// ListReservationsInput represents input for listing reservations.
type ListReservationsInput struct {
	Status  domain.PaymentStatus
	Urgency domain.Urgency
	Limit   int
	Offset  int
}

// ListReservations lists reservations with snapshots, optionally filtered by
// derived status and urgency. Filtering happens after the snapshot is
// computed - the derived state is never persisted, so it cannot be filtered
// in SQL.
func (uc *ReservationUseCase) ListReservations(ctx context.Context, input ListReservationsInput) ([]*ReservationWithSnapshot, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	if input.Limit > 500 {
		input.Limit = 500
	}

	reservations, err := uc.reservationRepo.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	result := make([]*ReservationWithSnapshot, 0, len(reservations))
	for _, r := range reservations {
		snap := domain.Summarize(r, now)

		if input.Status != "" && snap.Status != input.Status {
			continue
		}
		if input.Urgency != "" && snap.Urgency != input.Urgency {
			continue
		}

		result = append(result, &ReservationWithSnapshot{Reservation: r, Snapshot: snap})
	}

	return result, nil
}

// ChangePriceInput represents a price change after a configuration change
// (fewer guests, cheaper arrangement). Resolution must be supplied when the
// change leaves a credit.
type ChangePriceInput struct {
	ReservationID string
	NewPrice      decimal.Decimal
	Resolution    CreditResolution
	RefundMethod  domain.PaymentMethod
	RefundNote    string
	Actor         string
}

// PriceChangeResult reports the outcome of a price change, including the
// credit check that drove the operator decision.
type PriceChangeResult struct {
	Reservation *domain.Reservation
	Snapshot    domain.Snapshot
	CreditCheck domain.CreditCheck
	// RefundTransaction is set when the credit was resolved by refunding now.
	RefundTransaction *domain.Transaction
}

// ChangePrice updates the contractual price. When the new price drops below
// the already-held balance, the save does not complete silently: the caller
// gets ErrCreditUnresolved together with the detected credit, and must retry
// with an explicit resolution. Refund-now appends a refund through the same
// validated path as any other refund; keep-credit leaves the surplus visible
// on the snapshot.
func (uc *ReservationUseCase) ChangePrice(ctx context.Context, input ChangePriceInput) (*PriceChangeResult, error) {
	if input.NewPrice.IsNegative() {
		return nil, domain.ErrNegativePrice
	}

	now := time.Now().UTC()

	var (
		reservation *domain.Reservation
		check       domain.CreditCheck
		oldPrice    decimal.Decimal
		refundTxn   *domain.Transaction
	)
	err := uc.txManager.WithinTransaction(ctx, func(tx Transaction) error {
		var err error
		reservation, err = uc.reservationRepo.GetByIDForUpdate(ctx, tx, input.ReservationID)
		if err != nil {
			return err
		}

		oldPrice = reservation.TotalPrice
		check = domain.DetectCredit(oldPrice, input.NewPrice, reservation.Transactions)

		if check.HasCredit {
			switch input.Resolution {
			case ResolutionKeepCredit, ResolutionRefundNow:
			case "":
				// Required interactive checkpoint: surface the credit and block.
				return domain.ErrCreditUnresolved
			default:
				return domain.ErrInvalidResolution
			}
		}

		if err := uc.reservationRepo.UpdatePrice(ctx, tx, reservation.ID, input.NewPrice, now); err != nil {
			return err
		}
		reservation.TotalPrice = input.NewPrice
		reservation.UpdatedAt = now

		if check.HasCredit && input.Resolution == ResolutionRefundNow {
			refundTxn, err = uc.appendCreditRefund(ctx, tx, reservation, check.CreditAmount, input, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCreditUnresolved) && reservation != nil {
			return &PriceChangeResult{
				Reservation: reservation,
				CreditCheck: check,
			}, err
		}
		return nil, err
	}

	if check.HasCredit && uc.metrics != nil {
		uc.metrics.CreditsDetected.Inc()
	}

	uc.audit(ctx, domain.AuditActionPriceChange, reservation.ID, input.Actor, domain.JSON{
		"old_price":     oldPrice.String(),
		"new_price":     input.NewPrice.String(),
		"credit":        check.CreditAmount.String(),
		"resolution":    string(input.Resolution),
		"refund_txn_id": refundTxnID(refundTxn),
	})

	return &PriceChangeResult{
		Reservation:       reservation,
		Snapshot:          domain.Summarize(reservation, now),
		CreditCheck:       check,
		RefundTransaction: refundTxn,
	}, nil
}

func (uc *ReservationUseCase) appendCreditRefund(ctx context.Context, tx Transaction, reservation *domain.Reservation, amount decimal.Decimal, input ChangePriceInput, now time.Time) (*domain.Transaction, error) {
	method := input.RefundMethod
	if method == "" {
		method = domain.MethodBankTransfer
	}
	if err := domain.ValidateMethod(method); err != nil {
		return nil, err
	}

	note := input.RefundNote
	if note == "" {
		note = "credit refund after price change"
	}

	if err := domain.ValidateTransaction(reservation, domain.TransactionRefund, amount, note); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		ReservationID: reservation.ID,
		Type:          domain.TransactionRefund,
		Amount:        amount,
		Date:          now,
		Method:        method,
		Note:          note,
		ProcessedBy:   input.Actor,
		CreatedAt:     now,
	}

	if err := uc.transactionRepo.Append(ctx, tx, txn); err != nil {
		return nil, err
	}

	reservation.Transactions = append(reservation.Transactions, txn)

	return txn, nil
}

func (uc *ReservationUseCase) audit(ctx context.Context, action domain.AuditAction, resourceID, actor string, after domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		Actor:        actor,
		Action:       string(action),
		ResourceType: "reservation",
		ResourceID:   resourceID,
		AfterState:   after,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

func refundTxnID(txn *domain.Transaction) string {
	if txn == nil {
		return ""
	}
	return txn.ID
}
