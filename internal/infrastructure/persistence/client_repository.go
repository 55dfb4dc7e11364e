package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/tenant"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) scoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ClientModel{}).Scopes(tenant.Scope(tenantID))
}

// FindByIDForTenant finds a client by ID within a tenant
func (r *GormClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.scoped(ctx, tenantID).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all clients of a tenant.
// Filter keys: needs_reminder (bool), reminder_profile_id (uuid), country (string).
func (r *GormClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	query := r.applyFilter(r.scoped(ctx, tenantID), filter)
	return r.find(query)
}

// FindByIDs finds multiple clients by their IDs
func (r *GormClientRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Client, error) {
	if len(ids) == 0 {
		return []partner.Client{}, nil
	}
	return r.find(r.scoped(ctx, tenantID).Where("id IN ?", ids).Order("company_name ASC, id ASC"))
}

// FindNeedingReminder finds clients with the automated reminder flag set
func (r *GormClientRepository) FindNeedingReminder(ctx context.Context, tenantID uuid.UUID) ([]partner.Client, error) {
	return r.find(r.scoped(ctx, tenantID).Where("needs_reminder = ?", true).Order("company_name ASC, id ASC"))
}

func (r *GormClientRepository) find(query *gorm.DB) ([]partner.Client, error) {
	var rows []models.ClientModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	clients := make([]partner.Client, len(rows))
	for i := range rows {
		clients[i] = *rows[i].ToDomain()
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return saveVersioned(ctx, r.db, models.ClientModelFromDomain(client), client.ID, client.Version)
}

// DeleteForTenant deletes a client within a tenant
func (r *GormClientRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByIDs deletes multiple clients and returns how many were removed
func (r *GormClientRepository) DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Delete(&models.ClientModel{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

// CountForTenant counts clients for a tenant
func (r *GormClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, tenantID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(emails) LIKE ? OR LOWER(city) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "needs_reminder":
			query = query.Where("needs_reminder = ?", value)
		case "reminder_profile_id":
			query = query.Where("reminder_profile_id = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		}
	}

	return query.Order(orderClause(filter.OrderBy, filter.OrderDir, ClientSortFields, "company_name"))
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
