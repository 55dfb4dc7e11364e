package notification

import (
	"time"

	"github.com/paymentflow/backend/internal/domain/notification"
)

// SMTPSettingsRequest is the settings panel payload
type SMTPSettingsRequest struct {
	Host      string `json:"host" binding:"required,hostname|ip,max=255"`
	Port      int    `json:"port" binding:"required,min=1,max=65535"`
	Username  string `json:"username" binding:"max=255"`
	Password  string `json:"password" binding:"max=255"`
	FromEmail string `json:"from_email" binding:"required,email,max=254"`
	FromName  string `json:"from_name" binding:"max=200"`
	Secure    bool   `json:"secure"`
}

func (r SMTPSettingsRequest) toDomain() notification.SMTPSettings {
	return notification.SMTPSettings{
		Host:      r.Host,
		Port:      r.Port,
		Username:  r.Username,
		Password:  r.Password,
		FromEmail: r.FromEmail,
		FromName:  r.FromName,
		Secure:    r.Secure,
	}
}

// EmailRequest is one message of a relay batch. Without settings the
// tenant's stored settings are used.
type EmailRequest struct {
	Settings      *SMTPSettingsRequest `json:"settings"`
	To            string               `json:"to" binding:"required,max=2000"`
	Subject       string               `json:"subject" binding:"required,max=998"`
	HTML          string               `json:"html" binding:"max=1000000"`
	AttachmentURL string               `json:"attachment_url" binding:"max=2048"`
}

// SendEmailsRequest is a relay batch
type SendEmailsRequest struct {
	Emails []EmailRequest `json:"emails" binding:"required,min=1,dive"`
}

// EmailSettingsResponse is the settings panel without the password
type EmailSettingsResponse struct {
	Host        string     `json:"host"`
	Port        int        `json:"port"`
	Username    string     `json:"username"`
	FromEmail   string     `json:"from_email"`
	FromName    string     `json:"from_name"`
	Secure      bool       `json:"secure"`
	HasPassword bool       `json:"has_password"`
	Configured  bool       `json:"configured"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toSettingsResponse(s *notification.EmailSettings) EmailSettingsResponse {
	if s == nil {
		return EmailSettingsResponse{}
	}
	updated := s.UpdatedAt
	return EmailSettingsResponse{
		Host:        s.SMTP.Host,
		Port:        s.SMTP.Port,
		Username:    s.SMTP.Username,
		FromEmail:   s.SMTP.FromEmail,
		FromName:    s.SMTP.FromName,
		Secure:      s.SMTP.Secure,
		HasPassword: s.SMTP.Password != "",
		Configured:  true,
		UpdatedAt:   &updated,
	}
}

// DispatchResult summarizes one reminder run for a tenant. Due and Reminded
// count receivables; Sent, Failed and Skipped count per-client emails.
type DispatchResult struct {
	Clients  int `json:"clients"`
	Due      int `json:"due"`
	Sent     int `json:"sent"`
	Reminded int `json:"reminded"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}
