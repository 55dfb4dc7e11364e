package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/shared"
)

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
	return m.Called(ctx, receivable).Error(0)
}

func (m *MockReceivableRepository) DeleteByClientIDs(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, clientIDs)
	return args.Get(0).(int64), args.Error(1)
}

func TestReceivableService_ListByClient(t *testing.T) {
	repo := new(MockReceivableRepository)
	svc := NewReceivableService(repo)
	ctx := context.Background()
	tenantID, clientID := uuid.New(), uuid.New()

	r, err := finance.NewReceivable(tenantID, clientID, "INV-7", decimal.NewFromInt(12), nil)
	require.NoError(t, err)
	repo.On("FindByClient", ctx, tenantID, clientID).Return([]finance.Receivable{*r}, nil)

	list, err := svc.List(ctx, tenantID, ReceivableListFilter{ClientID: &clientID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "INV-7", list[0].InvoiceNumber)
	assert.Equal(t, "pending", list[0].Status)
	assert.False(t, list[0].Placeholder)
}

func TestReceivableService_ListWithStatusUsesFilter(t *testing.T) {
	repo := new(MockReceivableRepository)
	svc := NewReceivableService(repo)
	ctx := context.Background()
	tenantID := uuid.New()

	repo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "overdue" && f.OrderBy == "created_at"
	})).Return([]finance.Receivable{}, nil)

	list, err := svc.List(ctx, tenantID, ReceivableListFilter{Status: "overdue"})
	require.NoError(t, err)
	assert.Empty(t, list)
	repo.AssertExpectations(t)
}

func TestReceivableService_GetByIDNotFound(t *testing.T) {
	repo := new(MockReceivableRepository)
	svc := NewReceivableService(repo)
	ctx := context.Background()
	tenantID, id := uuid.New(), uuid.New()

	repo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, tenantID, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
