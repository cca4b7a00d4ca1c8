package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	CSV(ctx context.Context, input usecase.ExportInput) ([]byte, error)
}

// ExportHandler serves transaction exports for bookkeeping.
type ExportHandler struct {
	exportUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC ExportService) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// Export streams all transactions as a CSV download, optionally filtered by
// type.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	input := usecase.ExportInput{
		Type: domain.TransactionType(r.URL.Query().Get("type")),
	}

	data, err := h.exportUC.CSV(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export transactions", err.Error())
		return
	}

	filename := "transactions-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
