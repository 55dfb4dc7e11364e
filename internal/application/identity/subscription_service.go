package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/shared"
)

// SubscriptionServiceConfig configures the subscription gate
type SubscriptionServiceConfig struct {
	// Enforce denies gated actions for expired tenants. When false every
	// check is allowed and denials are only logged.
	Enforce bool
	// CacheTTL keeps decisions in the cache store; 0 disables caching
	CacheTTL time.Duration
}

// SubscriptionService reads tenant subscriptions and implements
// identity.SubscriptionGate
type SubscriptionService struct {
	repo   identity.SubscriptionRepository
	cache  *listing.JSONCodec[identity.SubscriptionDecision]
	cfg    SubscriptionServiceConfig
	logger *zap.Logger
	now    func() time.Time
}

var _ identity.SubscriptionGate = (*SubscriptionService)(nil)

// NewSubscriptionService creates a new SubscriptionService. store may be nil
// when no decision cache is wanted.
func NewSubscriptionService(repo identity.SubscriptionRepository, store listing.Store, cfg SubscriptionServiceConfig, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SubscriptionService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	if store != nil && cfg.CacheTTL > 0 {
		s.cache = listing.NewJSONCodec[identity.SubscriptionDecision](store, cfg.CacheTTL)
	}
	return s
}

func decisionKey(tenantID uuid.UUID) string {
	return "subscription:" + tenantID.String()
}

// Check evaluates the tenant's subscription right now
func (s *SubscriptionService) Check(ctx context.Context, tenantID uuid.UUID) (identity.SubscriptionDecision, error) {
	decision, err := s.decide(ctx, tenantID)
	if err != nil {
		return identity.SubscriptionDecision{}, err
	}
	if !decision.Allowed && !s.cfg.Enforce {
		s.logger.Warn("Subscription expired, enforcement disabled",
			zap.String("tenant_id", tenantID.String()),
			zap.String("reason", decision.Reason),
		)
		return identity.Allow(decision.ExpiresAt), nil
	}
	return decision, nil
}

func (s *SubscriptionService) decide(ctx context.Context, tenantID uuid.UUID) (identity.SubscriptionDecision, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Load(ctx, decisionKey(tenantID), identity.SubscriptionDecision{})
		if ok {
			return s.revalidate(cached), nil
		}
		if err != nil {
			s.logger.Debug("Subscription cache miss", zap.Error(err))
		}
	}

	sub, err := s.repo.FindByTenant(ctx, tenantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return identity.SubscriptionDecision{}, fmt.Errorf("load subscription: %w", err)
	}
	decision := identity.Decide(sub, s.now())

	if s.cache != nil {
		if err := s.cache.Save(ctx, decisionKey(tenantID), decision); err != nil {
			s.logger.Warn("Failed to cache subscription decision", zap.Error(err))
		}
	}
	return decision, nil
}

// revalidate expires a cached allow whose expiry has passed since caching
func (s *SubscriptionService) revalidate(d identity.SubscriptionDecision) identity.SubscriptionDecision {
	if d.Allowed && d.ExpiresAt != nil && !d.ExpiresAt.After(s.now()) {
		return identity.Deny(identity.ReasonExpired, d.ExpiresAt)
	}
	return d
}

// Get returns the tenant's subscription status
func (s *SubscriptionService) Get(ctx context.Context, tenantID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.repo.FindByTenant(ctx, tenantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	decision := identity.Decide(sub, s.now())
	resp := &SubscriptionResponse{
		Active:    decision.Allowed,
		ExpiresAt: decision.ExpiresAt,
		ShowModal: decision.ShowModal,
	}
	if sub != nil {
		resp.Plan = string(sub.Plan)
	}
	return resp, nil
}

// ActiveTenantIDs lists tenants with an active subscription
func (s *SubscriptionService) ActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.FindActiveTenantIDs(ctx, s.now())
}

// SubscriptionResponse represents the subscription state in API responses
type SubscriptionResponse struct {
	Plan      string     `json:"plan"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	ShowModal bool       `json:"show_modal"`
}
