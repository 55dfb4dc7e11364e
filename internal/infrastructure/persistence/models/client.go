package models

import (
	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	TenantModel
	CompanyName       string     `gorm:"type:varchar(200);not null;index"`
	Emails            string     `gorm:"type:varchar(1000);not null;default:''"`
	Street            string     `gorm:"type:varchar(200)"`
	PostalCode        string     `gorm:"type:varchar(20)"`
	City              string     `gorm:"type:varchar(100)"`
	Country           string     `gorm:"type:varchar(100)"`
	ReminderProfileID *uuid.UUID `gorm:"type:uuid;index"`
	NeedsReminder     bool       `gorm:"not null;default:false;index"`
	Notes             string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		TenantEntity: m.TenantEntity(),
		CompanyName:  m.CompanyName,
		Emails:       m.Emails,
		Address: partner.Address{
			Street:     m.Street,
			PostalCode: m.PostalCode,
			City:       m.City,
			Country:    m.Country,
		},
		ReminderProfileID: m.ReminderProfileID,
		NeedsReminder:     m.NeedsReminder,
		Notes:             m.Notes,
	}
}

// ClientModelFromDomain creates a persistence model from a domain Client.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		CompanyName:       c.CompanyName,
		Emails:            c.Emails,
		Street:            c.Address.Street,
		PostalCode:        c.Address.PostalCode,
		City:              c.Address.City,
		Country:           c.Address.Country,
		ReminderProfileID: c.ReminderProfileID,
		NeedsReminder:     c.NeedsReminder,
		Notes:             c.Notes,
	}
	m.FromTenantEntity(c.TenantEntity)
	return m
}
