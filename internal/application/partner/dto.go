package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/partner"
)

// =============================================================================
// Client DTOs
// =============================================================================

// ClientRequest is the submitted client form. Create and update share it:
// the form always sends the full staged record.
type ClientRequest struct {
	CompanyName       string     `json:"company_name" binding:"required,min=1,max=200"`
	Emails            []string   `json:"emails" binding:"max=50,dive,max=254"`
	Street            string     `json:"street" binding:"max=200"`
	PostalCode        string     `json:"postal_code" binding:"max=20"`
	City              string     `json:"city" binding:"max=100"`
	Country           string     `json:"country" binding:"max=100"`
	ReminderProfileID *uuid.UUID `json:"reminder_profile_id"`
	NeedsReminder     bool       `json:"needs_reminder"`
	Notes             string     `json:"notes" binding:"max=5000"`
	// ConfirmDeleteReceivables confirms deleting receivables when the
	// reminder flag is switched off
	ConfirmDeleteReceivables bool `json:"confirm_delete_receivables"`
}

// applyTo stages the request onto a draft
func (r ClientRequest) applyTo(d *partner.ClientDraft) {
	d.CompanyName = r.CompanyName
	d.Emails = partner.NewEmailList(r.Emails...)
	d.Address = partner.Address{
		Street:     r.Street,
		PostalCode: r.PostalCode,
		City:       r.City,
		Country:    r.Country,
	}
	d.ReminderProfileID = r.ReminderProfileID
	d.NeedsReminder = r.NeedsReminder
	d.Notes = r.Notes
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID                uuid.UUID  `json:"id"`
	TenantID          uuid.UUID  `json:"tenant_id"`
	CompanyName       string     `json:"company_name"`
	Emails            string     `json:"emails"`
	EmailList         []string   `json:"email_list"`
	Street            string     `json:"street"`
	PostalCode        string     `json:"postal_code"`
	City              string     `json:"city"`
	Country           string     `json:"country"`
	FullAddress       string     `json:"full_address"`
	ReminderProfileID *uuid.UUID `json:"reminder_profile_id,omitempty"`
	NeedsReminder     bool       `json:"needs_reminder"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int        `json:"version"`
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:                c.ID,
		TenantID:          c.TenantID,
		CompanyName:       c.CompanyName,
		Emails:            c.Emails,
		EmailList:         c.EmailList(),
		Street:            c.Address.Street,
		PostalCode:        c.Address.PostalCode,
		City:              c.Address.City,
		Country:           c.Address.Country,
		FullAddress:       c.Address.Full(),
		ReminderProfileID: c.ReminderProfileID,
		NeedsReminder:     c.NeedsReminder,
		Notes:             c.Notes,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		Version:           c.Version,
	}
}

// SubmitResult is the outcome of a client form submit
type SubmitResult struct {
	Client ClientResponse `json:"client"`
	// PlaceholderInvoice is set when a placeholder receivable was created
	PlaceholderInvoice string `json:"placeholder_invoice,omitempty"`
	// ReceivablesDeleted counts receivables removed by switching reminders off
	ReceivablesDeleted int64 `json:"receivables_deleted"`
}

// ClientRow is one row of the client list
type ClientRow struct {
	ID                  uuid.UUID       `json:"id"`
	CompanyName         string          `json:"company_name"`
	Emails              string          `json:"emails"`
	PrimaryEmail        string          `json:"primary_email"`
	Street              string          `json:"street"`
	PostalCode          string          `json:"postal_code"`
	City                string          `json:"city"`
	Country             string          `json:"country"`
	ReminderProfileID   *uuid.UUID      `json:"reminder_profile_id,omitempty"`
	ReminderProfileName string          `json:"reminder_profile_name"`
	NeedsReminder       bool            `json:"needs_reminder"`
	ReceivableCount     int             `json:"receivable_count"`
	OpenAmount          decimal.Decimal `json:"open_amount"`
	NextDueDate         *time.Time      `json:"next_due_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ListQuery carries the list view inputs of one request
type ListQuery struct {
	Search string `form:"search" binding:"max=200"`
	// Sort and Dir override and persist the sort configuration when set
	Sort string `form:"sort" binding:"max=50"`
	Dir  string `form:"dir" binding:"omitempty,oneof=asc desc none ascending descending"`
}

// ClientListResponse is the rendered client list
type ClientListResponse struct {
	Items   []ClientRow        `json:"items"`
	Sort    listing.SortConfig `json:"sort"`
	Search  string             `json:"search"`
	Total   int                `json:"total"`
	Visible int                `json:"visible"`
	Columns []string           `json:"columns"`
}

// SortRequest is a header click
type SortRequest struct {
	Column string `json:"column" binding:"required,max=50"`
}

// BulkDeleteRequest deletes the selected clients. With SelectAll the
// selection is every client matching Search.
type BulkDeleteRequest struct {
	IDs       []uuid.UUID `json:"ids"`
	SelectAll bool        `json:"select_all"`
	Search    string      `json:"search" binding:"max=200"`
	Confirm   bool        `json:"confirm"`
}

// BulkDeleteResponse reports a completed bulk delete and the refetched list
type BulkDeleteResponse struct {
	DeletedClients     int64               `json:"deleted_clients"`
	DeletedReceivables int64               `json:"deleted_receivables"`
	List               *ClientListResponse `json:"list"`
}

// =============================================================================
// Reminder profile DTOs
// =============================================================================

// ReminderProfileResponse represents a reminder profile in API responses
type ReminderProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	IntervalDays    int       `json:"interval_days"`
	MaxReminders    int       `json:"max_reminders"`
	SubjectTemplate string    `json:"subject_template"`
	BodyTemplate    string    `json:"body_template"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToReminderProfileResponse converts a domain ReminderProfile
func ToReminderProfileResponse(p *partner.ReminderProfile) ReminderProfileResponse {
	return ReminderProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		IntervalDays:    p.IntervalDays,
		MaxReminders:    p.MaxReminders,
		SubjectTemplate: p.SubjectTemplate,
		BodyTemplate:    p.BodyTemplate,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
