package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showware/resledger/internal/adapter/http/dto"
	"github.com/showware/resledger/internal/adapter/http/middleware"
	"github.com/showware/resledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RegisterPayment(ctx context.Context, input usecase.RegisterTransactionInput) (*usecase.RegisterResult, error)
	RegisterRefund(ctx context.Context, input usecase.RegisterTransactionInput) (*usecase.RegisterResult, error)
}

// PaymentHandler handles payment and refund registrations.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// RegisterPayment appends a payment to the reservation's ledger.
func (h *PaymentHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.paymentUC.RegisterPayment)
}

// RegisterRefund appends a refund to the reservation's ledger.
func (h *PaymentHandler) RegisterRefund(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.paymentUC.RegisterRefund)
}

func (h *PaymentHandler) register(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, input usecase.RegisterTransactionInput) (*usecase.RegisterResult, error),
) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		writeError(w, http.StatusBadRequest, "missing reservation ID", "")
		return
	}

	var req dto.RegisterTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	result, err := fn(r.Context(), req.ToUseCaseInput(reservationID, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterTransactionResponse{
		Transaction: dto.TransactionFromDomain(result.Transaction),
		Snapshot:    dto.SnapshotFromDomain(result.Snapshot),
	})
}
