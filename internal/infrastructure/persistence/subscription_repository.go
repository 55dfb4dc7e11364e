package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
)

// GormSubscriptionRepository implements identity.SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByTenant returns shared.ErrNotFound when the tenant has none
func (r *GormSubscriptionRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*identity.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindActiveTenantIDs returns tenants whose subscription never expires or expires after now
func (r *GormSubscriptionRepository) FindActiveTenantIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("tenant_id ASC").
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Save upserts the subscription of a tenant
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *identity.Subscription) error {
	model := models.SubscriptionModelFromDomain(sub)
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = time.Now()
	}
	model.CreatedAt = model.UpdatedAt
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "expires_at", "updated_at"}),
	}).Create(model).Error
}

var _ identity.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
