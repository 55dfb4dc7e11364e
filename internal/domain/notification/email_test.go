package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/internal/domain/shared"
)

func validSettings() SMTPSettings {
	return SMTPSettings{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "mailer",
		Password:  "secret",
		FromEmail: "billing@example.com",
		FromName:  "Billing",
	}
}

func TestSMTPSettings_Validate(t *testing.T) {
	assert.NoError(t, validSettings().Validate())

	s := validSettings()
	s.Host = ""
	s.Port = 0
	err := s.Validate()
	require.Error(t, err)

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "INVALID_EMAIL_SETTINGS", de.Code)
	assert.Equal(t, []string{"host", "port"}, de.Details["fields"])
}

func TestSMTPSettings_Redacted(t *testing.T) {
	s := validSettings()
	r := s.Redacted()
	assert.Empty(t, r.Password)
	assert.Equal(t, "secret", s.Password)
}

func TestMessage_Validate(t *testing.T) {
	msg := Message{Settings: validSettings(), To: "a@x.com, b@y.com", Subject: "Hi", HTML: "<p>x</p>"}
	assert.NoError(t, msg.Validate())
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, msg.Recipients())

	msg.To = " , "
	assert.Error(t, msg.Validate())

	msg.To = "a@@x.com"
	assert.Error(t, msg.Validate())

	msg.To = "a@x.com"
	msg.Subject = " "
	assert.Error(t, msg.Validate())
}
