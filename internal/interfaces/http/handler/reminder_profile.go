package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/paymentflow/backend/internal/application/partner"
)

// ReminderProfileReader reads reminder profiles
type ReminderProfileReader interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]partnerapp.ReminderProfileResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*partnerapp.ReminderProfileResponse, error)
}

// ReminderProfileHandler serves reminder profiles; they are managed elsewhere
type ReminderProfileHandler struct {
	BaseHandler
	profiles ReminderProfileReader
}

// NewReminderProfileHandler creates a new ReminderProfileHandler
func NewReminderProfileHandler(profiles ReminderProfileReader) *ReminderProfileHandler {
	return &ReminderProfileHandler{profiles: profiles}
}

// List returns the tenant's reminder profiles
func (h *ReminderProfileHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	items, err := h.profiles.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, items, int64(len(items)))
}

// Get returns one reminder profile
func (h *ReminderProfileHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	item, err := h.profiles.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
