package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paymentflow/backend/internal/domain/finance"
)

// ReceivableModel is the persistence model for a Receivable. Invoice numbers
// are unique per tenant through idx_receivables_tenant_invoice_number in the
// SQL migrations.
type ReceivableModel struct {
	TenantModel
	ClientID       uuid.UUID                `gorm:"type:uuid;not null;index"`
	InvoiceNumber  string                   `gorm:"type:varchar(50);not null;index"`
	Amount         decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate        *time.Time               `gorm:"index"`
	Status         finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReminderCount  int                      `gorm:"not null;default:0"`
	LastRemindedAt *time.Time
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable.
func (m *ReceivableModel) ToDomain() *finance.Receivable {
	return &finance.Receivable{
		TenantEntity:   m.TenantEntity(),
		ClientID:       m.ClientID,
		InvoiceNumber:  m.InvoiceNumber,
		Amount:         m.Amount,
		DueDate:        m.DueDate,
		Status:         m.Status,
		ReminderCount:  m.ReminderCount,
		LastRemindedAt: m.LastRemindedAt,
	}
}

// ReceivableModelFromDomain creates a persistence model from a domain Receivable.
func ReceivableModelFromDomain(r *finance.Receivable) *ReceivableModel {
	m := &ReceivableModel{
		ClientID:       r.ClientID,
		InvoiceNumber:  r.InvoiceNumber,
		Amount:         r.Amount,
		DueDate:        r.DueDate,
		Status:         r.Status,
		ReminderCount:  r.ReminderCount,
		LastRemindedAt: r.LastRemindedAt,
	}
	m.FromTenantEntity(r.TenantEntity)
	return m
}
