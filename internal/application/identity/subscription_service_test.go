package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/shared"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*identity.Subscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveTenantIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *identity.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

type mapStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *mapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func TestSubscriptionService_DeniesExpired(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, nil, SubscriptionServiceConfig{Enforce: true}, nil)
	ctx := context.Background()
	tenantID := uuid.New()
	past := time.Now().Add(-time.Hour)

	sub, _ := identity.NewSubscription(tenantID, identity.PlanBasic, &past)
	repo.On("FindByTenant", ctx, tenantID).Return(sub, nil)

	d, err := svc.Check(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.True(t, d.ShowModal)
	assert.True(t, errors.Is(d.Err(), shared.ErrSubscriptionExpired))
}

func TestSubscriptionService_MissingSubscriptionIsDenied(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, nil, SubscriptionServiceConfig{Enforce: true}, nil)
	ctx := context.Background()
	tenantID := uuid.New()

	repo.On("FindByTenant", ctx, tenantID).Return(nil, shared.ErrNotFound)

	d, err := svc.Check(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, identity.ReasonNoSubscription, d.Reason)
}

func TestSubscriptionService_NotEnforcedAllows(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, nil, SubscriptionServiceConfig{}, nil)
	ctx := context.Background()
	tenantID := uuid.New()

	repo.On("FindByTenant", ctx, tenantID).Return(nil, shared.ErrNotFound)

	d, err := svc.Check(ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestSubscriptionService_BackendErrorPropagates(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, nil, SubscriptionServiceConfig{Enforce: true}, nil)
	ctx := context.Background()
	tenantID := uuid.New()

	repo.On("FindByTenant", ctx, tenantID).Return(nil, errors.New("db down"))

	_, err := svc.Check(ctx, tenantID)
	assert.Error(t, err)
}

func TestSubscriptionService_CachesDecisions(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	store := &mapStore{data: make(map[string][]byte)}
	svc := NewSubscriptionService(repo, store, SubscriptionServiceConfig{Enforce: true, CacheTTL: time.Minute}, nil)
	ctx := context.Background()
	tenantID := uuid.New()
	future := time.Now().Add(time.Hour)

	sub, _ := identity.NewSubscription(tenantID, identity.PlanPro, &future)
	repo.On("FindByTenant", ctx, tenantID).Return(sub, nil).Once()

	for i := 0; i < 3; i++ {
		d, err := svc.Check(ctx, tenantID)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	repo.AssertNumberOfCalls(t, "FindByTenant", 1)

	svc.now = func() time.Time { return future.Add(time.Second) }
	d, err := svc.Check(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}
