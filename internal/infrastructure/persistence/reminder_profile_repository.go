package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/tenant"
)

// GormReminderProfileRepository reads reminder profiles
type GormReminderProfileRepository struct {
	db *gorm.DB
}

// NewGormReminderProfileRepository creates a new GormReminderProfileRepository
func NewGormReminderProfileRepository(db *gorm.DB) *GormReminderProfileRepository {
	return &GormReminderProfileRepository{db: db}
}

// FindByIDForTenant finds a profile by ID within a tenant
func (r *GormReminderProfileRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.ReminderProfile, error) {
	var model models.ReminderProfileModel
	if err := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all profiles of a tenant ordered by name
func (r *GormReminderProfileRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]partner.ReminderProfile, error) {
	return r.find(r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Order("name ASC, id ASC"))
}

// FindByIDs finds multiple profiles by their IDs
func (r *GormReminderProfileRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.ReminderProfile, error) {
	if len(ids) == 0 {
		return []partner.ReminderProfile{}, nil
	}
	return r.find(r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Where("id IN ?", ids))
}

func (r *GormReminderProfileRepository) find(query *gorm.DB) ([]partner.ReminderProfile, error) {
	var rows []models.ReminderProfileModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]partner.ReminderProfile, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

var _ partner.ReminderProfileRepository = (*GormReminderProfileRepository)(nil)
