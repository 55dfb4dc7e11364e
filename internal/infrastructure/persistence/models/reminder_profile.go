package models

import "github.com/paymentflow/backend/internal/domain/partner"

// ReminderProfileModel is the persistence model for a ReminderProfile.
type ReminderProfileModel struct {
	TenantModel
	Name            string `gorm:"type:varchar(100);not null"`
	IntervalDays    int    `gorm:"not null;default:7"`
	MaxReminders    int    `gorm:"not null;default:3"`
	SubjectTemplate string `gorm:"type:varchar(500);not null;default:''"`
	BodyTemplate    string `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for GORM
func (ReminderProfileModel) TableName() string {
	return "reminder_profiles"
}

// ToDomain converts the persistence model to a domain ReminderProfile.
func (m *ReminderProfileModel) ToDomain() *partner.ReminderProfile {
	return &partner.ReminderProfile{
		TenantEntity:    m.TenantEntity(),
		Name:            m.Name,
		IntervalDays:    m.IntervalDays,
		MaxReminders:    m.MaxReminders,
		SubjectTemplate: m.SubjectTemplate,
		BodyTemplate:    m.BodyTemplate,
	}
}

// ReminderProfileModelFromDomain is used by seeding; the service never writes profiles.
func ReminderProfileModelFromDomain(p *partner.ReminderProfile) *ReminderProfileModel {
	m := &ReminderProfileModel{
		Name:            p.Name,
		IntervalDays:    p.IntervalDays,
		MaxReminders:    p.MaxReminders,
		SubjectTemplate: p.SubjectTemplate,
		BodyTemplate:    p.BodyTemplate,
	}
	m.FromTenantEntity(p.TenantEntity)
	return m
}
