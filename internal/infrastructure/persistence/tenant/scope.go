// Package tenant scopes GORM queries to a single tenant.
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&clients)
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is added to the statement when the tenant is missing
var ErrTenantIDRequired = errors.New("tenant_id is required")

// Column is the tenant column shared by every tenant-scoped table
const Column = "tenant_id"

// Scope filters by tenant. A nil tenant fails the statement instead of
// silently widening it to every tenant.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(Column+" = ?", tenantID)
	}
}

// ScopeColumn is Scope for a qualified column, e.g. "clients.tenant_id" in joins
func ScopeColumn(column string, tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(column+" = ?", tenantID)
	}
}
