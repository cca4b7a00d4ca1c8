package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/showware/resledger/internal/domain"
)

// ExportUseCase flattens every reservation's transactions into rows for the
// back-office CSV export.
type ExportUseCase struct {
	reservationRepo ReservationRepository
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(reservationRepo ReservationRepository) *ExportUseCase {
	return &ExportUseCase{reservationRepo: reservationRepo}
}

// ExportInput represents export parameters. Type filters to payments or
// refunds only; empty exports both.
type ExportInput struct {
	Type domain.TransactionType
}

// ExportRow is one flattened transaction.
type ExportRow struct {
	Transaction   *domain.Transaction
	ReservationID string
	CustomerName  string
}

const exportPageSize = 500

// Rows collects and flattens all transactions, newest first.
func (uc *ExportUseCase) Rows(ctx context.Context, input ExportInput) ([]ExportRow, error) {
	if input.Type != "" {
		if err := domain.ValidateType(input.Type); err != nil {
			return nil, err
		}
	}

	var rows []ExportRow

	for offset := 0; ; offset += exportPageSize {
		reservations, err := uc.reservationRepo.List(ctx, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(reservations) == 0 {
			break
		}

		for _, r := range reservations {
			for _, txn := range r.Transactions {
				if input.Type != "" && txn.Type != input.Type {
					continue
				}
				rows = append(rows, ExportRow{
					Transaction:   txn,
					ReservationID: r.ID,
					CustomerName:  r.CustomerName,
				})
			}
		}

		if len(reservations) < exportPageSize {
			break
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Transaction.Date.After(rows[j].Transaction.Date)
	})

	return rows, nil
}

// CSV renders the flattened transactions as CSV with a header row.
func (uc *ExportUseCase) CSV(ctx context.Context, input ExportInput) ([]byte, error) {
	rows, err := uc.Rows(ctx, input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "type", "amount", "method", "reservation", "customer", "reason", "processed_by"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		txn := row.Transaction
		record := []string{
			txn.Date.Format("2006-01-02"),
			string(txn.Type),
			txn.Amount.StringFixed(2),
			string(txn.Method),
			row.ReservationID,
			row.CustomerName,
			txn.Note,
			txn.ProcessedBy,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
