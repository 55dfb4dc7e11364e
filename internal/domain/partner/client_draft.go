package partner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// ClientDraft stages the edits of the client form before a single
// insert-or-update. A draft without ClientID is in create mode.
type ClientDraft struct {
	ClientID          *uuid.UUID
	CompanyName       string
	Emails            *EmailList
	Address           Address
	ReminderProfileID *uuid.UUID
	NeedsReminder     bool
	Notes             string
}

// NewClientDraft starts a create-mode draft from defaults
func NewClientDraft() *ClientDraft {
	return &ClientDraft{
		Emails: NewEmailList(),
	}
}

// DraftFromClient starts an edit-mode draft from an existing client
func DraftFromClient(c *Client) *ClientDraft {
	id := c.ID
	var profileID *uuid.UUID
	if c.ReminderProfileID != nil {
		p := *c.ReminderProfileID
		profileID = &p
	}
	return &ClientDraft{
		ClientID:          &id,
		CompanyName:       c.CompanyName,
		Emails:            ParseEmailList(c.Emails),
		Address:           c.Address,
		ReminderProfileID: profileID,
		NeedsReminder:     c.NeedsReminder,
		Notes:             c.Notes,
	}
}

// IsCreate reports whether submitting the draft inserts a new client
func (d *ClientDraft) IsCreate() bool {
	return d.ClientID == nil
}

// Validate checks required fields and the email shape only
func (d *ClientDraft) Validate() error {
	if strings.TrimSpace(d.CompanyName) == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if d.Emails != nil {
		if err := d.Emails.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Build creates a new client from a create-mode draft
func (d *ClientDraft) Build(tenantID uuid.UUID) (*Client, error) {
	if !d.IsCreate() {
		return nil, shared.NewDomainError("INVALID_STATE", "Draft edits an existing client")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c, err := NewClient(tenantID, d.CompanyName)
	if err != nil {
		return nil, err
	}
	if err := d.copyFields(c); err != nil {
		return nil, err
	}
	c.Version = 1
	return c, nil
}

// ApplyTo writes an edit-mode draft onto its client
func (d *ClientDraft) ApplyTo(c *Client) error {
	if d.IsCreate() || *d.ClientID != c.ID {
		return shared.NewDomainError("INVALID_STATE", "Draft does not belong to this client")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	version := c.Version
	if err := c.Rename(d.CompanyName); err != nil {
		return err
	}
	if err := d.copyFields(c); err != nil {
		return err
	}
	c.Version = version + 1
	return nil
}

func (d *ClientDraft) copyFields(c *Client) error {
	joined := ""
	if d.Emails != nil {
		joined = d.Emails.Joined()
	}
	if err := c.SetEmails(joined); err != nil {
		return err
	}
	if err := c.SetNotes(d.Notes); err != nil {
		return err
	}
	c.SetAddress(d.Address)
	c.SetReminderProfile(d.ReminderProfileID)
	c.SetNeedsReminder(d.NeedsReminder)
	return nil
}
