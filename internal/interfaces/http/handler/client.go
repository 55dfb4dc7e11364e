package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/paymentflow/backend/internal/application/partner"
	"github.com/paymentflow/backend/internal/domain/listing"
)

// ClientCommands is the client form and record API
type ClientCommands interface {
	GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*partnerapp.ClientResponse, error)
	Create(ctx context.Context, tenantID uuid.UUID, req partnerapp.ClientRequest) (*partnerapp.SubmitResult, error)
	Update(ctx context.Context, tenantID, clientID uuid.UUID, req partnerapp.ClientRequest) (*partnerapp.SubmitResult, error)
	Delete(ctx context.Context, tenantID, clientID uuid.UUID) error
}

// ClientList is the client list view API
type ClientList interface {
	List(ctx context.Context, v partnerapp.Viewer, q partnerapp.ListQuery) (*partnerapp.ClientListResponse, error)
	GetSortConfig(ctx context.Context, v partnerapp.Viewer) listing.SortConfig
	ClickHeader(ctx context.Context, v partnerapp.Viewer, column string) (listing.SortConfig, error)
	ClearSortConfig(ctx context.Context, v partnerapp.Viewer) error
	BulkDelete(ctx context.Context, v partnerapp.Viewer, req partnerapp.BulkDeleteRequest) (*partnerapp.BulkDeleteResponse, error)
}

// ClientHandler handles the client list, form and bulk actions
type ClientHandler struct {
	BaseHandler
	clients ClientCommands
	list    ClientList
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients ClientCommands, list ClientList) *ClientHandler {
	return &ClientHandler{clients: clients, list: list}
}

// List renders the client list
//
//	@Summary	List clients filtered by search and sorted by the saved sort config
//	@Param		search	query	string	false	"case-insensitive substring"
//	@Param		sort	query	string	false	"column key, persisted when set"
//	@Param		dir		query	string	false	"asc, desc or none"
//	@Router		/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	v, ok := h.viewer(c)
	if !ok {
		return
	}
	var q partnerapp.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.list.List(c.Request.Context(), v, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, resp, int64(resp.Total))
}

// GetSortConfig returns the active sort configuration
//
//	@Router	/clients/sort-config [get]
func (h *ClientHandler) GetSortConfig(c *gin.Context) {
	v, ok := h.viewer(c)
	if !ok {
		return
	}
	h.Success(c, h.list.GetSortConfig(c.Request.Context(), v))
}

// Sort applies a header click
//
//	@Router	/clients/sort [post]
func (h *ClientHandler) Sort(c *gin.Context) {
	v, ok := h.viewer(c)
	if !ok {
		return
	}
	var req partnerapp.SortRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cfg, err := h.list.ClickHeader(c.Request.Context(), v, req.Column)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// ClearSortConfig forgets the saved sort configuration
//
//	@Router	/clients/sort-config [delete]
func (h *ClientHandler) ClearSortConfig(c *gin.Context) {
	v, ok := h.viewer(c)
	if !ok {
		return
	}
	if err := h.list.ClearSortConfig(c.Request.Context(), v); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one client
//
//	@Router	/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.clients.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create submits the client form in create mode
//
//	@Router	/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.ClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.clients.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update submits the client form in edit mode. Turning needs_reminder off
// for a client with receivables needs confirm_delete_receivables.
//
//	@Router	/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.ClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.clients.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a client after its receivables
//
//	@Router	/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete deletes the selected clients and returns the refetched list
//
//	@Router	/clients/bulk-delete [post]
func (h *ClientHandler) BulkDelete(c *gin.Context) {
	v, ok := h.viewer(c)
	if !ok {
		return
	}
	var req partnerapp.BulkDeleteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.list.BulkDelete(c.Request.Context(), v, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
