package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/shared"
)

// ReceivableService provides read access to receivables
type ReceivableService struct {
	receivableRepo finance.ReceivableRepository
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivableRepo finance.ReceivableRepository) *ReceivableService {
	return &ReceivableService{receivableRepo: receivableRepo}
}

// List returns receivables of one client, or of the tenant when no client is given
func (s *ReceivableService) List(ctx context.Context, tenantID uuid.UUID, filter ReceivableListFilter) ([]ReceivableResponse, error) {
	var (
		receivables []finance.Receivable
		err         error
	)
	if filter.ClientID != nil && filter.Status == "" {
		receivables, err = s.receivableRepo.FindByClient(ctx, tenantID, *filter.ClientID)
	} else {
		f := shared.DefaultFilter()
		if filter.OrderBy != "" {
			f.OrderBy = filter.OrderBy
		}
		if filter.OrderDir != "" {
			f.OrderDir = filter.OrderDir
		}
		if filter.ClientID != nil {
			f = f.With("client_id", *filter.ClientID)
		}
		if filter.Status != "" {
			f = f.With("status", filter.Status)
		}
		receivables, err = s.receivableRepo.FindAllForTenant(ctx, tenantID, f)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		responses[i] = ToReceivableResponse(&receivables[i])
	}
	return responses, nil
}

// GetByID retrieves one receivable
func (s *ReceivableService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReceivableResponse, error) {
	r, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToReceivableResponse(r)
	return &response, nil
}
