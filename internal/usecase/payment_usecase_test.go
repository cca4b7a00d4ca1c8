package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
	"github.com/showware/resledger/internal/usecase/mocks"
)

func seedReservation(repo *mocks.MockReservationRepository, price int64, txns ...*domain.Transaction) *domain.Reservation {
	r := &domain.Reservation{
		ID:           "res-1",
		CustomerName: "J. van den Berg",
		TotalPrice:   decimal.NewFromInt(price),
		Transactions: txns,
	}
	repo.Seed(r)
	return r
}

func newPaymentUseCase(resRepo *mocks.MockReservationRepository, txnRepo *mocks.MockTransactionRepository, auditRepo *mocks.MockAuditRepository) *usecase.PaymentUseCase {
	// A nil concrete pointer must not become a non-nil AuditRepository interface.
	var audit usecase.AuditRepository
	if auditRepo != nil {
		audit = auditRepo
	}
	return usecase.NewPaymentUseCase(
		mocks.NewMockTransactionManager(),
		resRepo,
		txnRepo,
		audit,
		mocks.NewMockIDGenerator(),
		nil,
	)
}

func TestPaymentUseCase_RegisterPayment(t *testing.T) {
	resRepo := mocks.NewMockReservationRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	auditRepo := mocks.NewMockAuditRepository()
	seedReservation(resRepo, 500)

	uc := newPaymentUseCase(resRepo, txnRepo, auditRepo)

	result, err := uc.RegisterPayment(context.Background(), usecase.RegisterTransactionInput{
		ReservationID: "res-1",
		Amount:        decimal.NewFromInt(300),
		Method:        domain.MethodBankTransfer,
		Reference:     "NL-2026-0042",
		Actor:         "anna",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Transaction.Type != domain.TransactionPayment {
		t.Errorf("Type = %s, want payment", result.Transaction.Type)
	}
	if result.Transaction.ProcessedBy != "anna" {
		t.Errorf("ProcessedBy = %q, want actor threaded through", result.Transaction.ProcessedBy)
	}
	if result.Transaction.ID == "" {
		t.Error("transaction must get a generated ID")
	}
	if result.Snapshot.Status != domain.StatusPartial {
		t.Errorf("Snapshot.Status = %s, want partial", result.Snapshot.Status)
	}
	if !result.Snapshot.AmountDue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Snapshot.AmountDue = %s, want 200", result.Snapshot.AmountDue)
	}

	appended := txnRepo.Appended()
	if len(appended) != 1 {
		t.Fatalf("expected 1 appended transaction, got %d", len(appended))
	}

	logs := auditRepo.Logs()
	if len(logs) != 1 || logs[0].Action != string(domain.AuditActionPaymentRegister) {
		t.Errorf("expected a payment.register audit log, got %+v", logs)
	}
}

func TestPaymentUseCase_RegisterPayment_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		method      domain.PaymentMethod
		expectError error
	}{
		{name: "zero amount", amount: 0, method: domain.MethodCash, expectError: domain.ErrInvalidAmount},
		{name: "negative amount", amount: -10, method: domain.MethodCash, expectError: domain.ErrInvalidAmount},
		{name: "bad method", amount: 100, method: domain.PaymentMethod("iou"), expectError: domain.ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := mocks.NewMockReservationRepository()
			txnRepo := mocks.NewMockTransactionRepository()
			seedReservation(resRepo, 500)

			uc := newPaymentUseCase(resRepo, txnRepo, nil)

			_, err := uc.RegisterPayment(context.Background(), usecase.RegisterTransactionInput{
				ReservationID: "res-1",
				Amount:        decimal.NewFromInt(tt.amount),
				Method:        tt.method,
			})

			if !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
			if len(txnRepo.Appended()) != 0 {
				t.Error("rejected transaction must never be constructed")
			}
		})
	}
}

func TestPaymentUseCase_RegisterRefund(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		price       int64
		existing    []*domain.Transaction
		amount      int64
		note        string
		expectError error
	}{
		{
			name:     "refund within balance",
			price:    500,
			existing: []*domain.Transaction{{Type: domain.TransactionPayment, Amount: decimal.NewFromInt(500), Date: now}},
			amount:   200,
			note:     "two seats released",
		},
		{
			name:        "refund cap enforced",
			price:       500,
			existing:    []*domain.Transaction{{Type: domain.TransactionPayment, Amount: decimal.NewFromInt(300), Date: now}},
			amount:      400,
			note:        "should not pass",
			expectError: domain.ErrRefundExceedsPaid,
		},
		{
			name:        "note required",
			price:       500,
			existing:    []*domain.Transaction{{Type: domain.TransactionPayment, Amount: decimal.NewFromInt(300), Date: now}},
			amount:      100,
			expectError: domain.ErrRefundNoteMissing,
		},
		{
			name:        "nothing to refund",
			price:       500,
			amount:      100,
			note:        "no payments yet",
			expectError: domain.ErrRefundExceedsPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo := mocks.NewMockReservationRepository()
			txnRepo := mocks.NewMockTransactionRepository()
			seedReservation(resRepo, tt.price, tt.existing...)

			uc := newPaymentUseCase(resRepo, txnRepo, nil)

			result, err := uc.RegisterRefund(context.Background(), usecase.RegisterTransactionInput{
				ReservationID: "res-1",
				Amount:        decimal.NewFromInt(tt.amount),
				Method:        domain.MethodBankTransfer,
				Note:          tt.note,
			})

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				if len(txnRepo.Appended()) != 0 {
					t.Error("rejected refund must never be constructed")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Transaction.Type != domain.TransactionRefund {
				t.Errorf("Type = %s, want refund", result.Transaction.Type)
			}
		})
	}
}

func TestPaymentUseCase_AppendFailureRollsBack(t *testing.T) {
	resRepo := mocks.NewMockReservationRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	seedReservation(resRepo, 500)

	appendErr := errors.New("constraint violation")
	txnRepo.AppendFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
		return appendErr
	}

	txManager := mocks.NewMockTransactionManager()
	uc := usecase.NewPaymentUseCase(txManager, resRepo, txnRepo, nil, mocks.NewMockIDGenerator(), nil)

	_, err := uc.RegisterPayment(context.Background(), usecase.RegisterTransactionInput{
		ReservationID: "res-1",
		Amount:        decimal.NewFromInt(100),
		Method:        domain.MethodCard,
	})

	if !errors.Is(err, appendErr) {
		t.Fatalf("expected append error to surface, got %v", err)
	}
	if txManager.Last == nil || !txManager.Last.RolledBack {
		t.Error("expected the db transaction to roll back")
	}
}

func TestPaymentUseCase_UnknownReservation(t *testing.T) {
	uc := newPaymentUseCase(mocks.NewMockReservationRepository(), mocks.NewMockTransactionRepository(), nil)

	_, err := uc.RegisterPayment(context.Background(), usecase.RegisterTransactionInput{
		ReservationID: "missing",
		Amount:        decimal.NewFromInt(100),
		Method:        domain.MethodCash,
	})

	if !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}
