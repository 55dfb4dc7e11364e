package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// Plan represents the subscription plan of a tenant
type Plan string

const (
	PlanTrial    Plan = "trial"
	PlanBasic    Plan = "basic"
	PlanPro      Plan = "pro"
	PlanLifetime Plan = "lifetime"
)

// IsValid checks if the plan is known
func (p Plan) IsValid() bool {
	switch p {
	case PlanTrial, PlanBasic, PlanPro, PlanLifetime:
		return true
	}
	return false
}

// Subscription holds the paid-access state of one tenant.
// A nil ExpiresAt never expires.
type Subscription struct {
	TenantID  uuid.UUID
	Plan      Plan
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// NewSubscription creates a subscription for a tenant
func NewSubscription(tenantID uuid.UUID, plan Plan, expiresAt *time.Time) (*Subscription, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !plan.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Invalid subscription plan")
	}
	return &Subscription{
		TenantID:  tenantID,
		Plan:      plan,
		ExpiresAt: expiresAt,
		UpdatedAt: time.Now(),
	}, nil
}

// IsActive reports whether the subscription is valid at now
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}

// Extend moves the expiry to expiresAt
func (s *Subscription) Extend(expiresAt time.Time) {
	s.ExpiresAt = &expiresAt
	s.UpdatedAt = time.Now()
}

// SubscriptionDecision is the outcome of a gate check
type SubscriptionDecision struct {
	Allowed   bool       `json:"allowed"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// ShowModal asks the caller to present the renewal dialog
	ShowModal bool   `json:"show_modal"`
	Reason    string `json:"reason,omitempty"`
}

// Denial reasons
const (
	ReasonExpired        = "expired"
	ReasonNoSubscription = "no_subscription"
)

// Allow returns an allowing decision
func Allow(expiresAt *time.Time) SubscriptionDecision {
	return SubscriptionDecision{Allowed: true, ExpiresAt: expiresAt}
}

// Deny returns a denying decision that asks for the renewal modal
func Deny(reason string, expiresAt *time.Time) SubscriptionDecision {
	return SubscriptionDecision{ExpiresAt: expiresAt, ShowModal: true, Reason: reason}
}

// Decide evaluates a subscription at now
func Decide(sub *Subscription, now time.Time) SubscriptionDecision {
	if sub == nil {
		return Deny(ReasonNoSubscription, nil)
	}
	if !sub.IsActive(now) {
		return Deny(ReasonExpired, sub.ExpiresAt)
	}
	return Allow(sub.ExpiresAt)
}

// Err converts a denying decision into a domain error, nil when allowed
func (d SubscriptionDecision) Err() error {
	if d.Allowed {
		return nil
	}
	details := map[string]any{
		"show_modal": d.ShowModal,
		"reason":     d.Reason,
	}
	if d.ExpiresAt != nil {
		details["expires_at"] = d.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return shared.ErrSubscriptionExpired.WithDetails(details)
}

// SubscriptionGate is the capability passed to every component that performs
// a gated action. It is checked right before the action runs.
type SubscriptionGate interface {
	Check(ctx context.Context, tenantID uuid.UUID) (SubscriptionDecision, error)
}

// GateFunc adapts a function to SubscriptionGate
type GateFunc func(ctx context.Context, tenantID uuid.UUID) (SubscriptionDecision, error)

// Check calls f
func (f GateFunc) Check(ctx context.Context, tenantID uuid.UUID) (SubscriptionDecision, error) {
	return f(ctx, tenantID)
}

// OpenGate allows everything
var OpenGate SubscriptionGate = GateFunc(func(context.Context, uuid.UUID) (SubscriptionDecision, error) {
	return Allow(nil), nil
})

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	// FindByTenant returns shared.ErrNotFound when the tenant has none
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// FindActiveTenantIDs returns tenants whose subscription is active at now
	FindActiveTenantIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)

	// Save creates or updates the subscription of a tenant
	Save(ctx context.Context, sub *Subscription) error
}
