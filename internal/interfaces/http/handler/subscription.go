package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/paymentflow/backend/internal/application/identity"
)

// SubscriptionReader reports the tenant's subscription
type SubscriptionReader interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*identityapp.SubscriptionResponse, error)
}

// SubscriptionHandler lets the frontend decide up front whether to show the renewal modal
type SubscriptionHandler struct {
	BaseHandler
	subscriptions SubscriptionReader
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions SubscriptionReader) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Get returns plan, expiry and whether gated actions are allowed
func (h *SubscriptionHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	resp, err := h.subscriptions.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
