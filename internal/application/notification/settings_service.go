package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/domain/shared"
)

// SettingsService manages the per-tenant email settings panel
type SettingsService struct {
	repo notification.EmailSettingsRepository
	gate identity.SubscriptionGate
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo notification.EmailSettingsRepository, gate identity.SubscriptionGate) *SettingsService {
	if gate == nil {
		gate = identity.OpenGate
	}
	return &SettingsService{repo: repo, gate: gate}
}

// Get returns the settings without the password. An unconfigured tenant
// gets an empty response.
func (s *SettingsService) Get(ctx context.Context, tenantID uuid.UUID) (*EmailSettingsResponse, error) {
	settings, err := s.repo.FindByTenant(ctx, tenantID)
	if errors.Is(err, shared.ErrNotFound) {
		resp := toSettingsResponse(nil)
		return &resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp := toSettingsResponse(settings)
	return &resp, nil
}

// Update replaces the settings. An empty password keeps the stored one.
func (s *SettingsService) Update(ctx context.Context, tenantID uuid.UUID, req SMTPSettingsRequest) (*EmailSettingsResponse, error) {
	decision, err := s.gate.Check(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	smtp := req.toDomain()
	if smtp.Password == "" {
		existing, err := s.repo.FindByTenant(ctx, tenantID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			smtp.Password = existing.SMTP.Password
		}
	}
	if err := smtp.Validate(); err != nil {
		return nil, err
	}

	settings := &notification.EmailSettings{
		TenantID:  tenantID,
		SMTP:      smtp,
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	resp := toSettingsResponse(settings)
	return &resp, nil
}

// Resolve returns the stored SMTP settings used when a message carries none
func (s *SettingsService) Resolve(ctx context.Context, tenantID uuid.UUID) (notification.SMTPSettings, error) {
	settings, err := s.repo.FindByTenant(ctx, tenantID)
	if errors.Is(err, shared.ErrNotFound) {
		return notification.SMTPSettings{}, notification.ErrInvalidSettings.WithDetails(map[string]any{
			"reason": "email settings are not configured",
		})
	}
	if err != nil {
		return notification.SMTPSettings{}, err
	}
	return settings.SMTP, nil
}
