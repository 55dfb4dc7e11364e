package partner

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/google/uuid"

	"github.com/paymentflow/backend/internal/domain/shared"
)

// Default reminder cadence for clients without a profile
const (
	DefaultReminderInterval = 7
	DefaultMaxReminders     = 3
	DefaultReminderSubject  = `{{if gt (len .Invoices) 1}}Payment reminder: {{len .Invoices}} open invoices{{else}}Payment reminder: {{.InvoiceNumber}}{{end}}`
	DefaultReminderBody     = `<p>Dear {{.CompanyName}},</p>
{{if gt (len .Invoices) 1}}<p>our records show that the following invoices are past due and still open:</p>
<ul>{{range .Invoices}}<li>{{.InvoiceNumber}} over {{.Amount}}, due on {{.DueDate}}</li>{{end}}</ul>
<p>Total outstanding: {{.Total}}</p>{{else}}<p>our records show that invoice {{.InvoiceNumber}} over {{.Amount}} was due on {{.DueDate}} and is still open.</p>{{end}}
<p>Please arrange the payment at your earliest convenience.</p>`
)

// ReminderProfile is a named configuration controlling reminder cadence
// and wording. Profiles are maintained outside this service and only read here.
type ReminderProfile struct {
	shared.TenantEntity
	Name            string
	IntervalDays    int
	MaxReminders    int
	SubjectTemplate string
	BodyTemplate    string
}

// DefaultReminderProfile is used for clients that reference no profile
func DefaultReminderProfile(tenantID uuid.UUID) *ReminderProfile {
	return &ReminderProfile{
		TenantEntity:    shared.TenantEntity{TenantID: tenantID},
		Name:            "Default",
		IntervalDays:    DefaultReminderInterval,
		MaxReminders:    DefaultMaxReminders,
		SubjectTemplate: DefaultReminderSubject,
		BodyTemplate:    DefaultReminderBody,
	}
}

// Interval returns the minimum time between two reminders
func (p *ReminderProfile) Interval() time.Duration {
	days := p.IntervalDays
	if days <= 0 {
		days = DefaultReminderInterval
	}
	return time.Duration(days) * 24 * time.Hour
}

// ReminderInvoice is one due receivable listed in a reminder email
type ReminderInvoice struct {
	InvoiceNumber string
	Amount        string
	DueDate       string
}

// ReminderData is the template input of a reminder email. A client gets one
// email covering all its due receivables; the single-invoice fields describe
// the oldest of them, Invoices lists all of them.
type ReminderData struct {
	CompanyName   string
	InvoiceNumber string
	Amount        string
	DueDate       string
	ReminderCount int
	Invoices      []ReminderInvoice
	Total         string
}

// Render renders subject and HTML body for data. The subject is plain text,
// the body is HTML-escaped.
func (p *ReminderProfile) Render(data ReminderData) (subject, html string, err error) {
	subjectSrc := p.SubjectTemplate
	if strings.TrimSpace(subjectSrc) == "" {
		subjectSrc = DefaultReminderSubject
	}
	bodySrc := p.BodyTemplate
	if strings.TrimSpace(bodySrc) == "" {
		bodySrc = DefaultReminderBody
	}

	st, err := texttemplate.New("subject").Option("missingkey=error").Parse(subjectSrc)
	if err != nil {
		return "", "", fmt.Errorf("parse subject template of profile %q: %w", p.Name, err)
	}
	bt, err := htmltemplate.New("body").Option("missingkey=error").Parse(bodySrc)
	if err != nil {
		return "", "", fmt.Errorf("parse body template of profile %q: %w", p.Name, err)
	}

	var sb, bb bytes.Buffer
	if err := st.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := bt.Execute(&bb, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return strings.TrimSpace(sb.String()), bb.String(), nil
}
