package partner

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// Field length limits
const (
	MaxCompanyNameLength = 200
	MaxEmailsLength      = 1000
	MaxNotesLength       = 5000
)

// Address is the postal address of a client
type Address struct {
	Street     string
	PostalCode string
	City       string
	Country    string
}

// IsEmpty reports whether no address field is set
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.PostalCode == "" && a.City == "" && a.Country == ""
}

// Full returns a single-line address
func (a Address) Full() string {
	parts := make([]string, 0, 3)
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if city := strings.TrimSpace(a.PostalCode + " " + a.City); city != "" {
		parts = append(parts, city)
	}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}

// Client is a company tracked for invoicing and payment reminders.
// It is the aggregate root of the partner context.
type Client struct {
	shared.TenantEntity
	CompanyName       string
	Emails            string // comma-joined contact emails
	Address           Address
	ReminderProfileID *uuid.UUID
	NeedsReminder     bool
	Notes             string
}

// NewClient creates a new client
func NewClient(tenantID uuid.UUID, companyName string) (*Client, error) {
	if err := validateCompanyName(companyName); err != nil {
		return nil, err
	}
	return &Client{
		TenantEntity: shared.NewTenantEntity(tenantID),
		CompanyName:  strings.TrimSpace(companyName),
	}, nil
}

// Rename changes the company name
func (c *Client) Rename(companyName string) error {
	if err := validateCompanyName(companyName); err != nil {
		return err
	}
	c.CompanyName = strings.TrimSpace(companyName)
	c.IncrementVersion()
	return nil
}

// SetEmails replaces the contact emails with a comma-joined list
func (c *Client) SetEmails(joined string) error {
	if utf8.RuneCountInString(joined) > MaxEmailsLength {
		return shared.NewDomainError("INVALID_EMAIL", "Emails cannot exceed 1000 characters")
	}
	for _, e := range SplitEmails(joined) {
		if !ValidEmail(e) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email: "+e)
		}
	}
	c.Emails = joined
	c.IncrementVersion()
	return nil
}

// EmailList returns the contact emails as a slice
func (c *Client) EmailList() []string {
	return SplitEmails(c.Emails)
}

// PrimaryEmail returns the first contact email, if any
func (c *Client) PrimaryEmail() string {
	if emails := c.EmailList(); len(emails) > 0 {
		return emails[0]
	}
	return ""
}

// SetAddress replaces the postal address
func (c *Client) SetAddress(a Address) {
	c.Address = Address{
		Street:     strings.TrimSpace(a.Street),
		PostalCode: strings.TrimSpace(a.PostalCode),
		City:       strings.TrimSpace(a.City),
		Country:    strings.TrimSpace(a.Country),
	}
	c.IncrementVersion()
}

// SetReminderProfile links a reminder profile; nil unlinks it
func (c *Client) SetReminderProfile(profileID *uuid.UUID) {
	c.ReminderProfileID = profileID
	c.IncrementVersion()
}

// SetNeedsReminder sets the automated reminder flag and reports whether it changed
func (c *Client) SetNeedsReminder(needs bool) bool {
	if c.NeedsReminder == needs {
		return false
	}
	c.NeedsReminder = needs
	c.IncrementVersion()
	return true
}

// SetNotes sets free-text notes
func (c *Client) SetNotes(notes string) error {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 5000 characters")
	}
	c.Notes = notes
	c.IncrementVersion()
	return nil
}

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCompanyNameLength {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}
