package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showware/resledger/internal/adapter/http/dto"
	"github.com/showware/resledger/internal/adapter/http/middleware"
	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// ReservationService defines the behavior needed by ReservationHandler.
type ReservationService interface {
	CreateReservation(ctx context.Context, input usecase.CreateReservationInput) (*domain.Reservation, error)
	GetReservation(ctx context.Context, id string) (*usecase.ReservationWithSnapshot, error)
	GetTimeline(ctx context.Context, id string) ([]*domain.Transaction, error)
	GetAuditTrail(ctx context.Context, id string, limit int) ([]*domain.AuditLog, error)
	ListReservations(ctx context.Context, input usecase.ListReservationsInput) ([]*usecase.ReservationWithSnapshot, error)
	ChangePrice(ctx context.Context, input usecase.ChangePriceInput) (*usecase.PriceChangeResult, error)
}

// ReservationHandler handles reservation-related HTTP requests.
type ReservationHandler struct {
	reservationUC ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(reservationUC ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationUC: reservationUC}
}

// Create creates a new reservation.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	reservation, err := h.reservationUC.CreateReservation(r.Context(), req.ToUseCaseInput(actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create reservation", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReservationFromDomain(reservation))
}

// Get retrieves a reservation with its financial snapshot.
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing reservation ID", "")
		return
	}

	rs, err := h.reservationUC.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get reservation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReservationWithSnapshotFromUseCase(rs))
}

// List lists reservations with snapshots, optionally filtered by derived
// status and urgency.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListReservationsInput{
		Status:  domain.PaymentStatus(r.URL.Query().Get("status")),
		Urgency: domain.Urgency(r.URL.Query().Get("urgency")),
		Limit:   parseIntQuery(r, "limit", 50),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	reservations, err := h.reservationUC.ListReservations(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list reservations", err.Error())
		return
	}

	result := make([]*dto.ReservationResponse, len(reservations))
	for i, rs := range reservations {
		result[i] = dto.ReservationWithSnapshotFromUseCase(rs)
	}

	writeJSON(w, http.StatusOK, dto.ListReservationsResponse{
		Reservations: result,
		Total:        int64(len(result)),
	})
}

// Timeline returns the reservation's transactions newest first.
func (h *ReservationHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	txns, err := h.reservationUC.GetTimeline(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get timeline", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// AuditTrail returns the audit history of a reservation.
func (h *ReservationHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 100)

	logs, err := h.reservationUC.GetAuditTrail(r.Context(), id, limit)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}

// ChangePrice updates the reservation's total price. When the new price
// leaves the customer with a credit and the request carried no resolution,
// the save is rejected with 409 and the detected credit so the operator can
// decide.
func (h *ReservationHandler) ChangePrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ChangePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	result, err := h.reservationUC.ChangePrice(r.Context(), req.ToUseCaseInput(id, actor))
	if err != nil {
		if errors.Is(err, domain.ErrCreditUnresolved) && result != nil {
			writeJSON(w, http.StatusConflict, dto.CreditConflictResponse{
				Error:                 "credit unresolved",
				Message:               "the new price leaves the customer with a credit; retry with a resolution",
				CreditAmount:          result.CreditCheck.CreditAmount,
				CreditAmountFormatted: domain.FormatEUR(result.CreditCheck.CreditAmount),
				Resolutions: []string{
					string(usecase.ResolutionKeepCredit),
					string(usecase.ResolutionRefundNow),
				},
			})
			return
		}

		writeError(w, mapDomainError(err), "failed to change price", err.Error())
		return
	}

	resp := dto.PriceChangeResponse{
		Reservation: dto.ReservationFromDomain(result.Reservation),
		Snapshot:    dto.SnapshotFromDomain(result.Snapshot),
	}
	if result.RefundTransaction != nil {
		resp.RefundTransaction = dto.TransactionFromDomain(result.RefundTransaction)
	}

	writeJSON(w, http.StatusOK, resp)
}
