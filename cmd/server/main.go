package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/showware/resledger/internal/adapter/http"
	"github.com/showware/resledger/internal/adapter/http/handler"
	"github.com/showware/resledger/internal/adapter/http/middleware"
	postgresRepo "github.com/showware/resledger/internal/adapter/repository/postgres"
	redisRepo "github.com/showware/resledger/internal/adapter/repository/redis"
	"github.com/showware/resledger/internal/infrastructure/config"
	"github.com/showware/resledger/internal/infrastructure/logger"
	"github.com/showware/resledger/internal/infrastructure/metrics"
	"github.com/showware/resledger/internal/infrastructure/postgres"
	"github.com/showware/resledger/internal/infrastructure/redis"
	"github.com/showware/resledger/internal/infrastructure/reminder"
	"github.com/showware/resledger/internal/usecase"
)

// listenAddr turns a configured port into a net listen address. Ports given
// as ":8080" or "host:8080" pass through unchanged.
func listenAddr(port string) string {
	if port == "" {
		return ":8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool, log.Logger)
	reservationRepo := postgresRepo.NewReservationRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	m := metrics.New()
	reservationUC := usecase.NewReservationUseCase(txManager, reservationRepo, transactionRepo, auditRepo, idGen, m)
	paymentUC := usecase.NewPaymentUseCase(txManager, reservationRepo, transactionRepo, auditRepo, idGen, m)
	exportUC := usecase.NewExportUseCase(reservationRepo)

	// Initialize handlers
	reservationHandler := handler.NewReservationHandler(reservationUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	exportHandler := handler.NewExportHandler(exportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReservationHandler: reservationHandler,
		PaymentHandler:     paymentHandler,
		ExportHandler:      exportHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(50, 100),
		Logger:             log.Logger,
	})

	// Start the payment reminder scanner
	scannerCtx, stopScanner := context.WithCancel(ctx)
	defer stopScanner()
	scanner := reminder.NewScanner(reminder.Config{
		Repo:      reservationRepo,
		Notifier:  reminder.NewLogNotifier(log.Logger),
		Logger:    log.Logger,
		Interval:  cfg.ReminderInterval,
		BatchSize: cfg.ReminderBatchSize,
	})
	go func() {
		if err := scanner.Start(scannerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("reminder scanner stopped")
		}
	}()

	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
