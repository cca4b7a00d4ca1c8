package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/showware/resledger/internal/adapter/http"
	"github.com/showware/resledger/internal/adapter/http/handler"
	"github.com/showware/resledger/internal/adapter/repository/postgres"
	redisrepo "github.com/showware/resledger/internal/adapter/repository/redis"
	"github.com/showware/resledger/internal/infrastructure/metrics"
	infraredis "github.com/showware/resledger/internal/infrastructure/redis"
	"github.com/showware/resledger/internal/usecase"
	"github.com/showware/resledger/tests/testutil"
)

var apiMetrics = metrics.New()

// newTestAPI wires the full HTTP stack against the test database.
func newTestAPI(t *testing.T, ctx context.Context, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool, zerolog.Nop())
	reservationRepo := postgres.NewReservationRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	idGen := postgres.NewULIDGenerator()

	reservationUC := usecase.NewReservationUseCase(txManager, reservationRepo, transactionRepo, auditRepo, idGen, apiMetrics)
	paymentUC := usecase.NewPaymentUseCase(txManager, reservationRepo, transactionRepo, auditRepo, idGen, apiMetrics)
	exportUC := usecase.NewExportUseCase(reservationRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ReservationHandler: handler.NewReservationHandler(reservationUC),
		PaymentHandler:     handler.NewPaymentHandler(paymentUC),
		ExportHandler:      handler.NewExportHandler(exportUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		Logger:             zerolog.Nop(),
	})
}
