package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/showware/resledger/internal/adapter/http/handler"
	"github.com/showware/resledger/internal/adapter/http/middleware"
	"github.com/showware/resledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReservationHandler *handler.ReservationHandler
	PaymentHandler     *handler.PaymentHandler
	ExportHandler      *handler.ExportHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Actor)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", cfg.ReservationHandler.Create)
			r.Get("/", cfg.ReservationHandler.List)
			r.Get("/{id}", cfg.ReservationHandler.Get)
			r.Put("/{id}/price", cfg.ReservationHandler.ChangePrice)
			r.Get("/{id}/timeline", cfg.ReservationHandler.Timeline)
			r.Get("/{id}/audit", cfg.ReservationHandler.AuditTrail)
			r.Post("/{id}/payments", cfg.PaymentHandler.RegisterPayment)
			r.Post("/{id}/refunds", cfg.PaymentHandler.RegisterRefund)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/export", cfg.ExportHandler.Export)
		})
	})

	return r
}
