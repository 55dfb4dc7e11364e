package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/paymentflow/backend/internal/application/finance"
)

// ReceivableReader lists receivables
type ReceivableReader interface {
	List(ctx context.Context, tenantID uuid.UUID, filter financeapp.ReceivableListFilter) ([]financeapp.ReceivableResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*financeapp.ReceivableResponse, error)
}

// ReceivableHandler serves the read-only receivable endpoints
type ReceivableHandler struct {
	BaseHandler
	receivables ReceivableReader
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivables ReceivableReader) *ReceivableHandler {
	return &ReceivableHandler{receivables: receivables}
}

// List returns the receivables of one client (client_id) or of the tenant
func (h *ReceivableHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter financeapp.ReceivableListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid client_id")
			return
		}
		filter.ClientID = &clientID
	}

	items, err := h.receivables.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, items, int64(len(items)))
}

// Get returns one receivable
func (h *ReceivableHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.receivables.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
