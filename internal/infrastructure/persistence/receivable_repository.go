package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/tenant"
)

var openStatuses = []finance.ReceivableStatus{finance.ReceivableStatusPending, finance.ReceivableStatusOverdue}

// GormReceivableRepository implements finance.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

func (r *GormReceivableRepository) scoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ReceivableModel{}).Scopes(tenant.Scope(tenantID))
}

// FindByIDForTenant finds a receivable by ID within a tenant
func (r *GormReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.scoped(ctx, tenantID).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds receivables of a tenant; filter keys: client_id, status
func (r *GormReceivableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Receivable, error) {
	query := r.scoped(ctx, tenantID)
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	return r.find(query.Order(orderClause(filter.OrderBy, filter.OrderDir, ReceivableSortFields, "created_at")))
}

// FindByClient finds all receivables of one client
func (r *GormReceivableRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]finance.Receivable, error) {
	return r.find(r.scoped(ctx, tenantID).Where("client_id = ?", clientID).Order("created_at ASC, id ASC"))
}

// FindByClients finds receivables whose client is in clientIDs
func (r *GormReceivableRepository) FindByClients(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) ([]finance.Receivable, error) {
	if len(clientIDs) == 0 {
		return []finance.Receivable{}, nil
	}
	return r.find(r.scoped(ctx, tenantID).Where("client_id IN ?", clientIDs).Order("created_at ASC, id ASC"))
}

// FindOpen finds all pending or overdue receivables of a tenant
func (r *GormReceivableRepository) FindOpen(ctx context.Context, tenantID uuid.UUID) ([]finance.Receivable, error) {
	return r.find(r.scoped(ctx, tenantID).Where("status IN ?", openStatuses).Order("due_date ASC, id ASC"))
}

func (r *GormReceivableRepository) find(query *gorm.DB) ([]finance.Receivable, error) {
	var rows []models.ReceivableModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.Receivable, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsForClient reports whether the client has any receivable
func (r *GormReceivableRepository) ExistsForClient(ctx context.Context, tenantID, clientID uuid.UUID) (bool, error) {
	count, err := r.CountByClient(ctx, tenantID, clientID)
	return count > 0, err
}

// CountByClient counts receivables of one client
func (r *GormReceivableRepository) CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, tenantID).Where("client_id = ?", clientID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *finance.Receivable) error {
	return saveVersioned(ctx, r.db, models.ReceivableModelFromDomain(receivable), receivable.ID, receivable.Version)
}

// DeleteByClientIDs deletes every receivable whose client is in clientIDs
func (r *GormReceivableRepository) DeleteByClientIDs(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (int64, error) {
	if len(clientIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Delete(&models.ReceivableModel{}, "client_id IN ?", clientIDs)
	return result.RowsAffected, result.Error
}

var _ finance.ReceivableRepository = (*GormReceivableRepository)(nil)
