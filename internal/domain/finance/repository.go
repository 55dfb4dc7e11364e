package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// ReceivableRepository defines the interface for receivable persistence
type ReceivableRepository interface {
	// FindByIDForTenant finds a receivable by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Receivable, error)

	// FindAllForTenant finds receivables of a tenant; filter keys: client_id, status
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Receivable, error)

	// FindByClient finds all receivables of one client
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]Receivable, error)

	// FindByClients finds receivables whose client is in clientIDs
	FindByClients(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) ([]Receivable, error)

	// FindOpen finds all pending or overdue receivables of a tenant
	FindOpen(ctx context.Context, tenantID uuid.UUID) ([]Receivable, error)

	// ExistsForClient reports whether the client has any receivable
	ExistsForClient(ctx context.Context, tenantID, clientID uuid.UUID) (bool, error)

	// CountByClient counts receivables of one client
	CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error)

	// Save creates or updates a receivable
	Save(ctx context.Context, receivable *Receivable) error

	// DeleteByClientIDs deletes every receivable whose client is in clientIDs
	DeleteByClientIDs(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (int64, error)
}
