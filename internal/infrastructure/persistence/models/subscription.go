package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/identity"
)

// SubscriptionModel stores one subscription row per tenant.
type SubscriptionModel struct {
	TenantID  uuid.UUID     `gorm:"type:uuid;primary_key"`
	Plan      identity.Plan `gorm:"type:varchar(20);not null;default:'trial'"`
	ExpiresAt *time.Time    `gorm:"index"`
	CreatedAt time.Time     `gorm:"not null"`
	UpdatedAt time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *SubscriptionModel) ToDomain() *identity.Subscription {
	return &identity.Subscription{
		TenantID:  m.TenantID,
		Plan:      m.Plan,
		ExpiresAt: m.ExpiresAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SubscriptionModelFromDomain creates a persistence model from a domain Subscription.
func SubscriptionModelFromDomain(s *identity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		TenantID:  s.TenantID,
		Plan:      s.Plan,
		ExpiresAt: s.ExpiresAt,
		UpdatedAt: s.UpdatedAt,
	}
}
