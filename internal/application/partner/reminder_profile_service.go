package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/partner"
)

// ReminderProfileService exposes reminder profiles read-only
type ReminderProfileService struct {
	profileRepo partner.ReminderProfileRepository
}

// NewReminderProfileService creates a new ReminderProfileService
func NewReminderProfileService(profileRepo partner.ReminderProfileRepository) *ReminderProfileService {
	return &ReminderProfileService{profileRepo: profileRepo}
}

// List returns all profiles of the tenant
func (s *ReminderProfileService) List(ctx context.Context, tenantID uuid.UUID) ([]ReminderProfileResponse, error) {
	profiles, err := s.profileRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReminderProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = ToReminderProfileResponse(&profiles[i])
	}
	return responses, nil
}

// GetByID returns one profile
func (s *ReminderProfileService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReminderProfileResponse, error) {
	profile, err := s.profileRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToReminderProfileResponse(profile)
	return &response, nil
}
