package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func payment(amount int64, date time.Time) *Transaction {
	return &Transaction{Type: TransactionPayment, Amount: decimal.NewFromInt(amount), Date: date}
}

func refund(amount int64, date time.Time) *Transaction {
	return &Transaction{Type: TransactionRefund, Amount: decimal.NewFromInt(amount), Date: date, Note: "test refund"}
}

func TestAggregate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		txns         []*Transaction
		wantPaid     int64
		wantRefunded int64
		wantBalance  int64
	}{
		{
			name: "empty list yields zero aggregates",
		},
		{
			name:        "single payment",
			txns:        []*Transaction{payment(500, now)},
			wantPaid:    500,
			wantBalance: 500,
		},
		{
			name:         "payments and refunds",
			txns:         []*Transaction{payment(300, now), payment(200, now), refund(100, now)},
			wantPaid:     500,
			wantRefunded: 100,
			wantBalance:  400,
		},
		{
			name:         "fully refunded",
			txns:         []*Transaction{payment(500, now), refund(500, now)},
			wantPaid:     500,
			wantRefunded: 500,
			wantBalance:  0,
		},
		{
			name:         "over-refund from a bypassed gate stays negative",
			txns:         []*Transaction{payment(100, now), refund(300, now)},
			wantPaid:     100,
			wantRefunded: 300,
			wantBalance:  -200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.txns)

			if !agg.TotalPaid.Equal(decimal.NewFromInt(tt.wantPaid)) {
				t.Errorf("TotalPaid = %s, want %d", agg.TotalPaid, tt.wantPaid)
			}
			if !agg.TotalRefunded.Equal(decimal.NewFromInt(tt.wantRefunded)) {
				t.Errorf("TotalRefunded = %s, want %d", agg.TotalRefunded, tt.wantRefunded)
			}
			if !agg.Balance.Equal(decimal.NewFromInt(tt.wantBalance)) {
				t.Errorf("Balance = %s, want %d", agg.Balance, tt.wantBalance)
			}
		})
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	now := time.Now()
	forward := []*Transaction{payment(300, now), refund(100, now), payment(50, now)}
	reversed := []*Transaction{payment(50, now), refund(100, now), payment(300, now)}

	a := Aggregate(forward)
	b := Aggregate(reversed)

	if !a.Balance.Equal(b.Balance) || !a.TotalPaid.Equal(b.TotalPaid) || !a.TotalRefunded.Equal(b.TotalRefunded) {
		t.Errorf("aggregates differ by iteration order: %+v vs %+v", a, b)
	}
}

func TestClassifyStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 10)

	tests := []struct {
		name    string
		price   int64
		txns    []*Transaction
		dueDate *time.Time
		want    PaymentStatus
	}{
		{
			name:  "zero price is not applicable",
			price: 0,
			want:  StatusNotApplicable,
		},
		{
			name:  "zero price with transactions still not applicable",
			price: 0,
			txns:  []*Transaction{payment(50, now)},
			want:  StatusNotApplicable,
		},
		{
			name:  "fully paid",
			price: 500,
			txns:  []*Transaction{payment(500, now)},
			want:  StatusPaid,
		},
		{
			name:  "overpaid still paid",
			price: 500,
			txns:  []*Transaction{payment(600, now)},
			want:  StatusPaid,
		},
		{
			name:  "partially paid",
			price: 500,
			txns:  []*Transaction{payment(300, now)},
			want:  StatusPartial,
		},
		{
			name:  "fully refunded takes precedence over paid",
			price: 500,
			txns:  []*Transaction{payment(500, now), refund(500, now)},
			want:  StatusRefunded,
		},
		{
			name:  "partial refund with remaining balance is partial",
			price: 500,
			txns:  []*Transaction{payment(400, now), refund(100, now)},
			want:  StatusPartial,
		},
		{
			name:    "no payments past due date",
			price:   500,
			dueDate: &past,
			want:    StatusOverdue,
		},
		{
			name:    "no payments before due date",
			price:   500,
			dueDate: &future,
			want:    StatusPending,
		},
		{
			name:  "no payments no due date",
			price: 500,
			want:  StatusPending,
		},
		{
			name:  "negative balance from bypassed gate is never paid",
			price: 500,
			txns:  []*Transaction{payment(100, now), refund(300, now)},
			want:  StatusRefunded,
		},
		{
			name:  "refunds only with no payments is not refunded",
			price: 500,
			txns:  []*Transaction{refund(300, now)},
			want:  StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.txns)
			got := ClassifyStatus(decimal.NewFromInt(tt.price), agg, tt.dueDate, now)

			if got != tt.want {
				t.Errorf("ClassifyStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyUrgency(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	days := func(n int) *time.Time {
		d := now.AddDate(0, 0, n)
		return &d
	}

	tests := []struct {
		name      string
		price     int64
		txns      []*Transaction
		status    PaymentStatus
		dueDate   *time.Time
		eventDate *time.Time
		want      Urgency
	}{
		{
			name:      "nothing due is on time",
			price:     500,
			txns:      []*Transaction{payment(500, now)},
			status:    StatusPaid,
			eventDate: days(3),
			want:      UrgencyOnTime,
		},
		{
			name:      "refunded is on time by convention",
			price:     500,
			txns:      []*Transaction{payment(500, now), refund(500, now)},
			status:    StatusRefunded,
			eventDate: days(3),
			want:      UrgencyOnTime,
		},
		{
			name:   "not applicable is on time",
			price:  0,
			status: StatusNotApplicable,
			want:   UrgencyOnTime,
		},
		{
			name:      "deadline passed is overdue",
			price:     500,
			status:    StatusPending,
			dueDate:   days(-2),
			eventDate: days(40),
			want:      UrgencyOverdue,
		},
		{
			name:      "event imminent overrides a comfortable deadline",
			price:     500,
			status:    StatusPending,
			dueDate:   days(30),
			eventDate: days(5),
			want:      UrgencyOverdue,
		},
		{
			name:      "event within two weeks is urgent",
			price:     500,
			status:    StatusPending,
			dueDate:   days(30),
			eventDate: days(10),
			want:      UrgencyUrgent,
		},
		{
			name:      "event within three weeks is due soon",
			price:     500,
			status:    StatusPartial,
			txns:      []*Transaction{payment(100, now)},
			dueDate:   days(30),
			eventDate: days(20),
			want:      UrgencyDueSoon,
		},
		{
			name:      "far out event is on time",
			price:     500,
			status:    StatusPending,
			eventDate: days(60),
			want:      UrgencyOnTime,
		},
		{
			name:      "no due date falls back to event minus lead time",
			price:     500,
			status:    StatusPending,
			eventDate: days(6),
			want:      UrgencyOverdue,
		},
		{
			name:   "no dates at all is on time",
			price:  500,
			status: StatusPending,
			want:   UrgencyOnTime,
		},
		{
			name:    "due date without event date can still go overdue",
			price:   500,
			status:  StatusPending,
			dueDate: days(-1),
			want:    UrgencyOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.txns)
			got := ClassifyUrgency(decimal.NewFromInt(tt.price), agg, tt.status, tt.dueDate, tt.eventDate, now, DefaultUrgencyPolicy)

			if got != tt.want {
				t.Errorf("ClassifyUrgency() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAggregates_AmountDueAndCredit(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		price      int64
		txns       []*Transaction
		wantDue    int64
		wantCredit int64
	}{
		{name: "unpaid", price: 500, wantDue: 500},
		{name: "partial", price: 500, txns: []*Transaction{payment(300, now)}, wantDue: 200},
		{name: "paid exactly", price: 500, txns: []*Transaction{payment(500, now)}},
		{name: "overpaid", price: 500, txns: []*Transaction{payment(600, now)}, wantCredit: 100},
		{
			name:    "negative balance keeps due positive and credit zero",
			price:   500,
			txns:    []*Transaction{payment(100, now), refund(300, now)},
			wantDue: 700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.txns)
			price := decimal.NewFromInt(tt.price)

			if due := agg.AmountDue(price); !due.Equal(decimal.NewFromInt(tt.wantDue)) {
				t.Errorf("AmountDue = %s, want %d", due, tt.wantDue)
			}
			if credit := agg.Credit(price); !credit.Equal(decimal.NewFromInt(tt.wantCredit)) {
				t.Errorf("Credit = %s, want %d", credit, tt.wantCredit)
			}
			if agg.AmountDue(price).IsNegative() || agg.Credit(price).IsNegative() {
				t.Error("AmountDue and Credit must never be negative")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	eventDate := now.AddDate(0, 0, 10)

	r := &Reservation{
		ID:         "res-1",
		TotalPrice: decimal.NewFromInt(500),
		Transactions: []*Transaction{
			payment(300, now.AddDate(0, 0, -5)),
			refund(100, now.AddDate(0, 0, -1)),
		},
		EventDate: &eventDate,
	}

	snap := Summarize(r, now)

	if !snap.TotalPaid.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TotalPaid = %s, want 300", snap.TotalPaid)
	}
	if !snap.Balance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Balance = %s, want 200", snap.Balance)
	}
	if !snap.AmountDue.Equal(decimal.NewFromInt(300)) {
		t.Errorf("AmountDue = %s, want 300", snap.AmountDue)
	}
	if snap.Status != StatusPartial {
		t.Errorf("Status = %s, want %s", snap.Status, StatusPartial)
	}
	if snap.Urgency != UrgencyUrgent {
		t.Errorf("Urgency = %s, want %s", snap.Urgency, UrgencyUrgent)
	}
	if snap.PaymentCount != 1 || snap.RefundCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", snap.PaymentCount, snap.RefundCount)
	}
	if snap.AmountDueFormatted != "€ 300,00" {
		t.Errorf("AmountDueFormatted = %q", snap.AmountDueFormatted)
	}
}

func TestSummarize_FullyRefundedOwesNothing(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	dueDate := now.AddDate(0, 0, -10)

	r := &Reservation{
		ID:         "res-1",
		TotalPrice: decimal.NewFromInt(500),
		Transactions: []*Transaction{
			payment(500, now.AddDate(0, 0, -30)),
			refund(500, now.AddDate(0, 0, -2)),
		},
		PaymentDueDate: &dueDate,
	}

	snap := Summarize(r, now)

	if snap.Status != StatusRefunded {
		t.Fatalf("Status = %s, want %s", snap.Status, StatusRefunded)
	}
	if !snap.AmountDue.IsZero() {
		t.Errorf("AmountDue = %s, want 0", snap.AmountDue)
	}
	if snap.AmountDueFormatted != "€ 0,00" {
		t.Errorf("AmountDueFormatted = %q, want \"€ 0,00\"", snap.AmountDueFormatted)
	}
	if snap.Urgency != UrgencyOnTime {
		t.Errorf("Urgency = %s, want %s", snap.Urgency, UrgencyOnTime)
	}
}

func TestSummarize_Recompute(t *testing.T) {
	now := time.Now()

	r := &Reservation{TotalPrice: decimal.NewFromInt(500)}

	first := Summarize(r, now)
	if first.Status != StatusPending {
		t.Fatalf("Status = %s, want %s", first.Status, StatusPending)
	}

	r.Transactions = append(r.Transactions, payment(500, now))

	second := Summarize(r, now)
	if second.Status != StatusPaid {
		t.Fatalf("snapshot not recomputed: Status = %s, want %s", second.Status, StatusPaid)
	}
}

func TestTimeline(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	txns := []*Transaction{
		payment(100, base),
		refund(50, base.AddDate(0, 0, 5)),
		payment(200, base.AddDate(0, 0, 2)),
	}

	timeline := Timeline(txns)

	if len(timeline) != 3 {
		t.Fatalf("len = %d, want 3", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].Date.After(timeline[i-1].Date) {
			t.Errorf("timeline not sorted newest first at index %d", i)
		}
	}
	// Input order untouched.
	if !txns[0].Date.Equal(base) {
		t.Error("Timeline mutated its input")
	}
}

func TestDetectCredit(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		oldPrice   int64
		newPrice   int64
		txns       []*Transaction
		wantCredit bool
		wantAmount int64
	}{
		{
			name:       "price reduced below paid amount",
			oldPrice:   500,
			newPrice:   300,
			txns:       []*Transaction{payment(500, now)},
			wantCredit: true,
			wantAmount: 200,
		},
		{
			name:     "price reduced but still above balance",
			oldPrice: 500,
			newPrice: 400,
			txns:     []*Transaction{payment(300, now)},
		},
		{
			name:     "price equal to balance",
			oldPrice: 500,
			newPrice: 300,
			txns:     []*Transaction{payment(300, now)},
		},
		{
			name:     "no transactions",
			oldPrice: 500,
			newPrice: 100,
		},
		{
			name:       "refunds reduce the balance before comparison",
			oldPrice:   500,
			newPrice:   200,
			txns:       []*Transaction{payment(500, now), refund(200, now)},
			wantCredit: true,
			wantAmount: 100,
		},
		{
			name:     "price increase never yields credit",
			oldPrice: 300,
			newPrice: 800,
			txns:     []*Transaction{payment(300, now)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := DetectCredit(decimal.NewFromInt(tt.oldPrice), decimal.NewFromInt(tt.newPrice), tt.txns)

			if check.HasCredit != tt.wantCredit {
				t.Errorf("HasCredit = %v, want %v", check.HasCredit, tt.wantCredit)
			}
			if !check.CreditAmount.Equal(decimal.NewFromInt(tt.wantAmount)) {
				t.Errorf("CreditAmount = %s, want %d", check.CreditAmount, tt.wantAmount)
			}
		})
	}
}
