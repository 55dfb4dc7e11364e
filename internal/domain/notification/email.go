// Package notification holds the email relay domain: SMTP settings, outgoing
// messages and per-message send results.
package notification

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
)

// SMTPSettings describes the outgoing mail server of a tenant
type SMTPSettings struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	// Secure selects implicit TLS; otherwise STARTTLS is used when offered
	Secure bool `json:"secure"`
}

// ErrInvalidSettings is returned for unusable SMTP settings
var ErrInvalidSettings = shared.NewDomainError("INVALID_EMAIL_SETTINGS", "Email settings are incomplete")

// Validate checks the settings are usable for sending
func (s SMTPSettings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Host) == "" {
		missing = append(missing, "host")
	}
	if s.Port <= 0 || s.Port > 65535 {
		missing = append(missing, "port")
	}
	if strings.TrimSpace(s.FromEmail) == "" {
		missing = append(missing, "from_email")
	} else if _, err := mail.ParseAddress(s.FromEmail); err != nil {
		missing = append(missing, "from_email")
	}
	if len(missing) > 0 {
		return ErrInvalidSettings.WithDetails(map[string]any{"fields": missing})
	}
	return nil
}

// Redacted returns a copy without the password
func (s SMTPSettings) Redacted() SMTPSettings {
	s.Password = ""
	return s
}

// Message is one outgoing email
type Message struct {
	Settings SMTPSettings
	// To may hold several comma-joined recipients
	To            string
	Subject       string
	HTML          string
	AttachmentURL string
}

// Recipients splits To into individual addresses
func (m Message) Recipients() []string {
	return partner.SplitEmails(m.To)
}

// Validate checks recipients, subject and body
func (m Message) Validate() error {
	recipients := m.Recipients()
	if len(recipients) == 0 {
		return shared.NewDomainError("INVALID_RECIPIENT", "At least one recipient is required")
	}
	for _, r := range recipients {
		if !partner.ValidEmail(r) || !strings.Contains(r, "@") {
			return shared.NewDomainError("INVALID_RECIPIENT", "Invalid recipient: "+r)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	return nil
}

// Attachment is a fetched attachment ready to be sent
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Failure describes one message that could not be sent
type Failure struct {
	Index int    `json:"index"`
	To    string `json:"to"`
	Error string `json:"error"`
}

// Result is the outcome of a relay batch
type Result struct {
	Success  bool      `json:"success"`
	Sent     int       `json:"sent"`
	Failures []Failure `json:"failures,omitempty"`
}

// Sender delivers one message over SMTP
type Sender interface {
	Send(ctx context.Context, msg Message, attachment *Attachment) error
}

// AttachmentFetcher downloads the attachment referenced by a message
type AttachmentFetcher interface {
	Fetch(ctx context.Context, ref string) (*Attachment, error)
}

// EmailSettings is the persisted settings panel of one tenant
type EmailSettings struct {
	TenantID  uuid.UUID
	SMTP      SMTPSettings
	UpdatedAt time.Time
}

// EmailSettingsRepository defines the interface for email settings persistence
type EmailSettingsRepository interface {
	// FindByTenant returns shared.ErrNotFound when nothing was saved yet
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*EmailSettings, error)
	Save(ctx context.Context, settings *EmailSettings) error
}
