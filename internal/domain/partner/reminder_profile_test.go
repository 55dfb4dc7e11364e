package partner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderProfile_RenderDefaults(t *testing.T) {
	p := DefaultReminderProfile(uuid.New())

	subject, html, err := p.Render(ReminderData{
		CompanyName:   "Acme <GmbH>",
		InvoiceNumber: "INV-1",
		Amount:        "120.00",
		DueDate:       "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment reminder: INV-1", subject)
	assert.Contains(t, html, "Acme &lt;GmbH&gt;")
	assert.Contains(t, html, "2024-03-01")
}

func TestReminderProfile_RenderCustomAndBroken(t *testing.T) {
	p := &ReminderProfile{
		Name:            "Firm",
		SubjectTemplate: "Reminder #{{.ReminderCount}}",
		BodyTemplate:    "<b>{{.Amount}}</b>",
	}
	subject, html, err := p.Render(ReminderData{Amount: "5.00", ReminderCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "Reminder #2", subject)
	assert.Equal(t, "<b>5.00</b>", html)

	p.BodyTemplate = "{{.Missing"
	_, _, err = p.Render(ReminderData{})
	assert.Error(t, err)
}

func TestReminderProfile_Interval(t *testing.T) {
	assert.Equal(t, 3*24*time.Hour, (&ReminderProfile{IntervalDays: 3}).Interval())
	assert.Equal(t, 7*24*time.Hour, (&ReminderProfile{}).Interval())
}

func TestReminderProfile_RenderSeveralInvoices(t *testing.T) {
	p := DefaultReminderProfile(uuid.New())

	subject, html, err := p.Render(ReminderData{
		CompanyName:   "Acme",
		InvoiceNumber: "INV-1",
		Amount:        "10.00",
		DueDate:       "2024-03-01",
		Invoices: []ReminderInvoice{
			{InvoiceNumber: "INV-1", Amount: "10.00", DueDate: "2024-03-01"},
			{InvoiceNumber: "INV-2", Amount: "<5.00>", DueDate: "2024-04-01"},
		},
		Total: "15.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment reminder: 2 open invoices", subject)
	assert.Contains(t, html, "<li>INV-1 over 10.00, due on 2024-03-01</li>")
	assert.Contains(t, html, "&lt;5.00&gt;")
	assert.Contains(t, html, "Total outstanding: 15.00")
	assert.NotContains(t, html, "was due on")
}
