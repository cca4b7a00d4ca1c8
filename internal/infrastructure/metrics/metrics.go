package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	PaymentsRegistered prometheus.Counter
	RefundsRegistered  prometheus.Counter
	PaymentAmount      prometheus.Histogram
	RefundAmount       prometheus.Histogram
	ValidationFailures *prometheus.CounterVec
	CreditsDetected    prometheus.Counter

	// Reservation metrics
	ReservationsCreated prometheus.Counter
	PriceChanges        prometheus.Counter

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		PaymentsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resledger_payments_registered_total",
			Help: "Total number of payments registered",
		}),
		RefundsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resledger_refunds_registered_total",
			Help: "Total number of refunds registered",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "resledger_payment_amount",
			Help:    "Registered payment amounts",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		RefundAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "resledger_refund_amount",
			Help:    "Registered refund amounts",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		ValidationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resledger_validation_failures_total",
				Help: "Total number of rejected transactions by reason",
			},
			[]string{"reason"},
		),
		CreditsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resledger_credits_detected_total",
			Help: "Total number of price changes that left a customer credit",
		}),

		ReservationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resledger_reservations_created_total",
			Help: "Total number of reservations created",
		}),
		PriceChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resledger_price_changes_total",
			Help: "Total number of reservation price changes",
		}),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resledger_audit_logs_created_total",
				Help: "Total audit log entries by action",
			},
			[]string{"action"},
		),
	}
}
