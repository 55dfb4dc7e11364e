package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
	"github.com/paymentflow/backend/internal/infrastructure/secret"
)

// GormEmailSettingsRepository stores per-tenant SMTP settings. Passwords
// pass through the Sealer on the way in and out.
type GormEmailSettingsRepository struct {
	db     *gorm.DB
	sealer secret.Sealer
}

// NewGormEmailSettingsRepository creates a new GormEmailSettingsRepository.
// A nil sealer stores passwords unchanged.
func NewGormEmailSettingsRepository(db *gorm.DB, sealer secret.Sealer) *GormEmailSettingsRepository {
	if sealer == nil {
		sealer = secret.Plain{}
	}
	return &GormEmailSettingsRepository{db: db, sealer: sealer}
}

// FindByTenant returns shared.ErrNotFound when nothing was saved yet
func (r *GormEmailSettingsRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*notification.EmailSettings, error) {
	var model models.EmailSettingsModel
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	password, err := r.sealer.Open(model.SMTPPassword)
	if err != nil {
		return nil, fmt.Errorf("open smtp password: %w", err)
	}
	model.SMTPPassword = password
	return model.ToDomain(), nil
}

// Save upserts the settings of a tenant
func (r *GormEmailSettingsRepository) Save(ctx context.Context, settings *notification.EmailSettings) error {
	model := models.EmailSettingsModelFromDomain(settings)
	sealed, err := r.sealer.Seal(model.SMTPPassword)
	if err != nil {
		return fmt.Errorf("seal smtp password: %w", err)
	}
	model.SMTPPassword = sealed
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = time.Now()
	}
	model.CreatedAt = model.UpdatedAt

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"smtp_host", "smtp_port", "smtp_username", "smtp_password",
			"from_email", "from_name", "secure", "updated_at",
		}),
	}).Create(model).Error
}

var _ notification.EmailSettingsRepository = (*GormEmailSettingsRepository)(nil)
