package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/showware/resledger/internal/domain"
	"github.com/showware/resledger/internal/usecase"
)

// MockReservationRepository is a mock implementation of ReservationRepository.
type MockReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]*domain.Reservation

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, reservation *domain.Reservation) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Reservation, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Reservation, error)
	UpdatePriceFunc      func(ctx context.Context, tx usecase.Transaction, id string, price decimal.Decimal, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Reservation, error)
}

func NewMockReservationRepository() *MockReservationRepository {
	return &MockReservationRepository{
		reservations: make(map[string]*domain.Reservation),
	}
}

// Seed stores a reservation directly, bypassing the Create path.
func (m *MockReservationRepository) Seed(reservation *domain.Reservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[reservation.ID] = reservation
}

func (m *MockReservationRepository) Create(ctx context.Context, tx usecase.Transaction, reservation *domain.Reservation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, reservation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[reservation.ID] = reservation
	return nil
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.reservations[id]; ok {
		return r, nil
	}
	return nil, domain.ErrReservationNotFound
}

func (m *MockReservationRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Reservation, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockReservationRepository) UpdatePrice(ctx context.Context, tx usecase.Transaction, id string, price decimal.Decimal, updatedAt time.Time) error {
	if m.UpdatePriceFunc != nil {
		return m.UpdatePriceFunc(ctx, tx, id, price, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	r.TotalPrice = price
	r.UpdatedAt = updatedAt
	return nil
}

func (m *MockReservationRepository) List(ctx context.Context, limit, offset int) ([]*domain.Reservation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*domain.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		all = append(all, r)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	AppendFunc            func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByReservationFunc func(ctx context.Context, reservationID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
	return nil
}

func (m *MockTransactionRepository) ListByReservation(ctx context.Context, reservationID string) ([]*domain.Transaction, error) {
	if m.ListByReservationFunc != nil {
		return m.ListByReservationFunc(ctx, reservationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.txns {
		if t.ReservationID == reservationID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Appended returns all transactions appended through this mock.
func (m *MockTransactionRepository) Appended() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.txns))
	copy(out, m.txns)
	return out
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	logs []*domain.AuditLog

	CreateFunc         func(ctx context.Context, log *domain.AuditLog) error
	ListByResourceFunc func(ctx context.Context, resourceType, resourceID string, limit int) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]*domain.AuditLog, error) {
	if m.ListByResourceFunc != nil {
		return m.ListByResourceFunc(ctx, resourceType, resourceID, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.AuditLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		log := m.logs[i]
		if log.ResourceType != resourceType || log.ResourceID != resourceID {
			continue
		}
		out = append(out, log)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Logs returns all recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	WithinTransactionFunc func(ctx context.Context, fn func(tx usecase.Transaction) error) error

	Last *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) WithinTransaction(ctx context.Context, fn func(tx usecase.Transaction) error) error {
	if m.WithinTransactionFunc != nil {
		return m.WithinTransactionFunc(ctx, fn)
	}
	m.Last = &MockTransaction{}
	if err := fn(m.Last); err != nil {
		_ = m.Last.Rollback(ctx)
		return err
	}
	return m.Last.Commit(ctx)
}

// MockIDGenerator generates sequential IDs for tests.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}
