package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	notificationapp "github.com/paymentflow/backend/internal/application/notification"
)

// EmailSettingsStore reads and writes the tenant's SMTP settings
type EmailSettingsStore interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*notificationapp.EmailSettingsResponse, error)
	Update(ctx context.Context, tenantID uuid.UUID, req notificationapp.SMTPSettingsRequest) (*notificationapp.EmailSettingsResponse, error)
}

// SettingsHandler serves the email settings panel. The password is write-only.
type SettingsHandler struct {
	BaseHandler
	settings EmailSettingsStore
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings EmailSettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetEmail returns the stored settings without the password
func (h *SettingsHandler) GetEmail(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.settings.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateEmail replaces the settings; an empty password keeps the stored one
func (h *SettingsHandler) UpdateEmail(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req notificationapp.SMTPSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.settings.Update(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
