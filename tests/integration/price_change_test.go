package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/adapter/http/dto"
	"github.com/showware/resledger/tests/testutil"
)

func TestPriceChangeCreditFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestAPI(t, ctx, testDB)

	reservation := testDB.CreateTestReservation(ctx, "Smit", decimal.NewFromInt(500), nil, nil)

	pay := func(t *testing.T, amount int64) {
		t.Helper()
		body, _ := json.Marshal(dto.RegisterTransactionRequest{
			Amount: decimal.NewFromInt(amount),
			Method: "bank_transfer",
		})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+reservation.ID+"/payments", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("payment setup failed: %d %s", w.Code, w.Body.String())
		}
	}

	changePrice := func(t *testing.T, req dto.ChangePriceRequest) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(req)
		r := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+reservation.ID+"/price", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("X-Actor", "gerda")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	pay(t, 500)

	t.Run("price drop below balance requires a decision", func(t *testing.T) {
		w := changePrice(t, dto.ChangePriceRequest{NewPrice: decimal.NewFromInt(300)})

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.CreditConflictResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode conflict: %v", err)
		}
		if resp.CreditAmountFormatted != "€ 200,00" {
			t.Fatalf("unexpected credit: %s", resp.CreditAmountFormatted)
		}

		// The rejected save must not have touched the price.
		r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+reservation.ID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		var got dto.ReservationResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode reservation: %v", err)
		}
		if !got.TotalPrice.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("expected price unchanged at 500, got %s", got.TotalPrice)
		}
	})

	t.Run("price increase needs no decision", func(t *testing.T) {
		w := changePrice(t, dto.ChangePriceRequest{NewPrice: decimal.NewFromInt(600)})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.PriceChangeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Snapshot.Status != "partial" {
			t.Fatalf("expected partial after increase, got %s", resp.Snapshot.Status)
		}
		if resp.Snapshot.AmountDueFormatted != "€ 100,00" {
			t.Fatalf("unexpected amount due: %s", resp.Snapshot.AmountDueFormatted)
		}
	})

	t.Run("refund now resolves the credit", func(t *testing.T) {
		w := changePrice(t, dto.ChangePriceRequest{
			NewPrice:   decimal.NewFromInt(300),
			Resolution: "refund_now",
			RefundNote: "arrangement downsized",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.PriceChangeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.RefundTransaction == nil {
			t.Fatal("expected refund transaction")
		}
		if resp.RefundTransaction.AmountFormatted != "€ 200,00" {
			t.Fatalf("unexpected refund amount: %s", resp.RefundTransaction.AmountFormatted)
		}
		if resp.Snapshot.Status != "paid" {
			t.Fatalf("expected paid after refund, got %s", resp.Snapshot.Status)
		}
	})

	t.Run("export includes the credit refund", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?type=refund", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Fatalf("expected text/csv, got %s", ct)
		}

		body := w.Body.String()
		if !strings.Contains(body, "refund") || !strings.Contains(body, "200.00") {
			t.Fatalf("expected refund row in export, got:\n%s", body)
		}
		if !strings.Contains(body, "Smit") {
			t.Fatalf("expected customer name in export, got:\n%s", body)
		}
	})
}
