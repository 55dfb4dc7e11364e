package partner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindNeedingReminder(ctx context.Context, tenantID uuid.UUID) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReceivableRepository is a mock implementation of ReceivableRepository
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Receivable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Receivable, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]finance.Receivable, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByClients(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) ([]finance.Receivable, error) {
	args := m.Called(ctx, tenantID, clientIDs)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindOpen(ctx context.Context, tenantID uuid.UUID) ([]finance.Receivable, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ExistsForClient(ctx context.Context, tenantID, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceivableRepository) CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivableRepository) Save(ctx context.Context, receivable *finance.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) DeleteByClientIDs(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, clientIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockReminderProfileRepository is a mock implementation of ReminderProfileRepository
type MockReminderProfileRepository struct {
	mock.Mock
}

func (m *MockReminderProfileRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.ReminderProfile, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ReminderProfile), args.Error(1)
}

func (m *MockReminderProfileRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]partner.ReminderProfile, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]partner.ReminderProfile), args.Error(1)
}

func (m *MockReminderProfileRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.ReminderProfile, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]partner.ReminderProfile), args.Error(1)
}

// memoryStore is a map-backed listing.Store
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
