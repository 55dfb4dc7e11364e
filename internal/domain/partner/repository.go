package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByIDForTenant finds a client by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)

	// FindAllForTenant finds all clients of a tenant, ordered by the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Client, error)

	// FindByIDs finds multiple clients by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Client, error)

	// FindNeedingReminder finds clients with the automated reminder flag set
	FindNeedingReminder(ctx context.Context, tenantID uuid.UUID) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// DeleteForTenant deletes a client within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// DeleteByIDs deletes multiple clients and returns how many were removed
	DeleteByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (int64, error)

	// CountForTenant counts clients for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// ReminderProfileRepository provides read access to reminder profiles
type ReminderProfileRepository interface {
	// FindByIDForTenant finds a profile by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ReminderProfile, error)

	// FindAllForTenant finds all profiles of a tenant ordered by name
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ReminderProfile, error)

	// FindByIDs finds multiple profiles by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]ReminderProfile, error)
}
