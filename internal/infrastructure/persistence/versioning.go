package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// ErrConcurrentModification is returned when a versioned row changed underneath the caller
var ErrConcurrentModification = shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another request")

// saveVersioned updates the row only when the stored version is exactly one
// behind the entity. When no row matched and none exists yet, it inserts.
func saveVersioned(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, version int) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", id, version-1).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrConcurrentModification
	}
	return db.WithContext(ctx).Create(model).Error
}

// notFound maps gorm.ErrRecordNotFound to shared.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
