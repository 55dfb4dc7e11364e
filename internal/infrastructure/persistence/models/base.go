package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// TenantModel holds the columns shared by every tenant-scoped table.
// Version backs optimistic locking.
type TenantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// FromTenantEntity copies the entity columns into the model
func (m *TenantModel) FromTenantEntity(e shared.TenantEntity) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.Version = e.Version
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantEntity rebuilds the domain entity columns
func (m *TenantModel) TenantEntity() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID: m.TenantID,
		Version:  m.Version,
	}
}
