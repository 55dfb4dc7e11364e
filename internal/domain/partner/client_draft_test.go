package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDraft_Defaults(t *testing.T) {
	d := NewClientDraft()

	assert.True(t, d.IsCreate())
	assert.Equal(t, []string{""}, d.Emails.Boxes())
	assert.False(t, d.NeedsReminder)
}

func TestClientDraft_Build(t *testing.T) {
	tenantID := uuid.New()
	profileID := uuid.New()
	d := NewClientDraft()
	d.CompanyName = "Acme"
	require.NoError(t, d.Emails.Set(0, "billing@acme.test"))
	d.Emails.Add()
	require.NoError(t, d.Emails.Set(1, "ceo@acme.test"))
	d.Address = Address{City: "Berlin"}
	d.ReminderProfileID = &profileID
	d.NeedsReminder = true
	d.Notes = "VIP"

	c, err := d.Build(tenantID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, "billing@acme.test,ceo@acme.test", c.Emails)
	assert.Equal(t, "Berlin", c.Address.City)
	assert.Equal(t, &profileID, c.ReminderProfileID)
	assert.True(t, c.NeedsReminder)
	assert.Equal(t, "VIP", c.Notes)
	assert.Equal(t, 1, c.Version)
}

func TestClientDraft_RequiresCompanyName(t *testing.T) {
	d := NewClientDraft()
	_, err := d.Build(uuid.New())
	assert.Error(t, err)
}

func TestClientDraft_RejectsBadEmail(t *testing.T) {
	d := NewClientDraft()
	d.CompanyName = "Acme"
	require.NoError(t, d.Emails.Set(0, "x@@y"))
	_, err := d.Build(uuid.New())
	assert.Error(t, err)
}

func TestDraftFromClient_ApplyTo(t *testing.T) {
	c, err := NewClient(uuid.New(), "Acme")
	require.NoError(t, err)
	require.NoError(t, c.SetEmails("a@acme.test,b@acme.test"))
	startVersion := c.Version

	d := DraftFromClient(c)
	assert.False(t, d.IsCreate())
	assert.Equal(t, []string{"a@acme.test", "b@acme.test"}, d.Emails.Boxes())

	d.CompanyName = "Acme Holding"
	require.NoError(t, d.Emails.Remove(0))
	d.NeedsReminder = true

	require.NoError(t, d.ApplyTo(c))
	assert.Equal(t, "Acme Holding", c.CompanyName)
	assert.Equal(t, "b@acme.test", c.Emails)
	assert.True(t, c.NeedsReminder)
	assert.Equal(t, startVersion+1, c.Version)
}

func TestClientDraft_ApplyToOtherClientFails(t *testing.T) {
	a, _ := NewClient(uuid.New(), "A")
	b, _ := NewClient(uuid.New(), "B")

	assert.Error(t, DraftFromClient(a).ApplyTo(b))
	assert.Error(t, NewClientDraft().ApplyTo(a))
}
