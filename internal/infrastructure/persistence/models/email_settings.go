package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/notification"
)

// EmailSettingsModel stores the SMTP settings of a tenant.
type EmailSettingsModel struct {
	TenantID     uuid.UUID `gorm:"type:uuid;primary_key"`
	SMTPHost     string    `gorm:"type:varchar(255);not null"`
	SMTPPort     int       `gorm:"not null;default:587"`
	SMTPUsername string    `gorm:"type:varchar(255)"`
	SMTPPassword string    `gorm:"type:varchar(255)"`
	FromEmail    string    `gorm:"type:varchar(255);not null"`
	FromName     string    `gorm:"type:varchar(255)"`
	Secure       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EmailSettingsModel) TableName() string {
	return "email_settings"
}

// ToDomain converts the persistence model to domain EmailSettings.
func (m *EmailSettingsModel) ToDomain() *notification.EmailSettings {
	return &notification.EmailSettings{
		TenantID: m.TenantID,
		SMTP: notification.SMTPSettings{
			Host:      m.SMTPHost,
			Port:      m.SMTPPort,
			Username:  m.SMTPUsername,
			Password:  m.SMTPPassword,
			FromEmail: m.FromEmail,
			FromName:  m.FromName,
			Secure:    m.Secure,
		},
		UpdatedAt: m.UpdatedAt,
	}
}

// EmailSettingsModelFromDomain creates a persistence model from domain EmailSettings.
func EmailSettingsModelFromDomain(s *notification.EmailSettings) *EmailSettingsModel {
	return &EmailSettingsModel{
		TenantID:     s.TenantID,
		SMTPHost:     s.SMTP.Host,
		SMTPPort:     s.SMTP.Port,
		SMTPUsername: s.SMTP.Username,
		SMTPPassword: s.SMTP.Password,
		FromEmail:    s.SMTP.FromEmail,
		FromName:     s.SMTP.FromName,
		Secure:       s.SMTP.Secure,
		UpdatedAt:    s.UpdatedAt,
	}
}
