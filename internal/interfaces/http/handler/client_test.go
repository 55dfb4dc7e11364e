package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	partnerapp "github.com/paymentflow/backend/internal/application/partner"
	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/interfaces/http/dto"
)

type clientFixture struct {
	tenantID uuid.UUID
	userID   uuid.UUID
	commands *mockClientCommands
	list     *mockClientList
	router   http.Handler
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()
	f := &clientFixture{
		tenantID: uuid.New(),
		userID:   uuid.New(),
		commands: new(mockClientCommands),
		list:     new(mockClientList),
	}
	h := NewClientHandler(f.commands, f.list)
	r := newTestRouter(f.tenantID, f.userID)
	r.GET("/clients", h.List)
	r.GET("/clients/sort-config", h.GetSortConfig)
	r.DELETE("/clients/sort-config", h.ClearSortConfig)
	r.POST("/clients/sort", h.Sort)
	r.POST("/clients/bulk-delete", h.BulkDelete)
	r.GET("/clients/:id", h.Get)
	r.POST("/clients", h.Create)
	r.PUT("/clients/:id", h.Update)
	r.DELETE("/clients/:id", h.Delete)
	f.router = r
	t.Cleanup(func() {
		f.commands.AssertExpectations(t)
		f.list.AssertExpectations(t)
	})
	return f
}

func (f *clientFixture) viewer() partnerapp.Viewer {
	return partnerapp.Viewer{TenantID: f.tenantID, UserID: f.userID}
}

func TestClientHandler_List(t *testing.T) {
	f := newClientFixture(t)
	q := partnerapp.ListQuery{Search: "acme", Sort: "city", Dir: "desc"}
	f.list.On("List", mock.Anything, f.viewer(), q).Return(&partnerapp.ClientListResponse{
		Items: []partnerapp.ClientRow{{ID: uuid.New(), CompanyName: "Acme"}},
		Sort:  listing.SortConfig{Key: "city", Sort: listing.Descending},
		Total: 3, Visible: 1,
	}, nil)

	w := doJSON(t, f.router, http.MethodGet, "/clients?search=acme&sort=city&dir=desc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
}

func TestClientHandler_List_RejectsBadDirection(t *testing.T) {
	f := newClientFixture(t)

	w := doJSON(t, f.router, http.MethodGet, "/clients?dir=sideways", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.list.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestClientHandler_Unauthenticated(t *testing.T) {
	h := NewClientHandler(new(mockClientCommands), new(mockClientList))
	r := newTestRouter(uuid.Nil, uuid.Nil)
	r.GET("/clients", h.List)

	w := doJSON(t, r, http.MethodGet, "/clients", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, decodeResponse(t, w).Error.Code)
}

func TestClientHandler_Sort(t *testing.T) {
	t.Run("toggles the column", func(t *testing.T) {
		f := newClientFixture(t)
		cfg := listing.SortConfig{Key: "company_name", Sort: listing.Descending}
		f.list.On("ClickHeader", mock.Anything, f.viewer(), "company_name").Return(cfg, nil)

		w := doJSON(t, f.router, http.MethodPost, "/clients/sort", partnerapp.SortRequest{Column: "company_name"})

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "company_name", data["key"])
		assert.Equal(t, "desc", data["sort"])
	})

	t.Run("unknown column is a 400", func(t *testing.T) {
		f := newClientFixture(t)
		f.list.On("ClickHeader", mock.Anything, f.viewer(), "nope").
			Return(listing.SortConfig{}, listing.ErrUnknownColumn)

		w := doJSON(t, f.router, http.MethodPost, "/clients/sort", partnerapp.SortRequest{Column: "nope"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeUnknownSortColumn, decodeResponse(t, w).Error.Code)
	})

	t.Run("missing column fails validation", func(t *testing.T) {
		f := newClientFixture(t)

		w := doJSON(t, f.router, http.MethodPost, "/clients/sort", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClientHandler_SortConfig(t *testing.T) {
	f := newClientFixture(t)
	f.list.On("GetSortConfig", mock.Anything, f.viewer()).
		Return(listing.SortConfig{Key: "company_name", Sort: listing.Ascending})
	f.list.On("ClearSortConfig", mock.Anything, f.viewer()).Return(nil)

	w := doJSON(t, f.router, http.MethodGet, "/clients/sort-config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "asc", decodeResponse(t, w).Data.(map[string]any)["sort"])

	w = doJSON(t, f.router, http.MethodDelete, "/clients/sort-config", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestClientHandler_Get(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		f := newClientFixture(t)
		w := doJSON(t, f.router, http.MethodGet, "/clients/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		f := newClientFixture(t)
		id := uuid.New()
		f.commands.On("GetByID", mock.Anything, f.tenantID, id).Return(nil, shared.ErrNotFound)

		w := doJSON(t, f.router, http.MethodGet, "/clients/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "req-test", resp.Error.RequestID)
	})

	t.Run("found", func(t *testing.T) {
		f := newClientFixture(t)
		id := uuid.New()
		f.commands.On("GetByID", mock.Anything, f.tenantID, id).
			Return(&partnerapp.ClientResponse{ID: id, CompanyName: "Acme"}, nil)

		w := doJSON(t, f.router, http.MethodGet, "/clients/"+id.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Acme", decodeResponse(t, w).Data.(map[string]any)["company_name"])
	})
}

func TestClientHandler_Create(t *testing.T) {
	f := newClientFixture(t)
	req := partnerapp.ClientRequest{
		CompanyName:   "Acme GmbH",
		Emails:        []string{"a@acme.test", "b@acme.test"},
		NeedsReminder: true,
	}
	f.commands.On("Create", mock.Anything, f.tenantID, req).Return(&partnerapp.SubmitResult{
		Client:             partnerapp.ClientResponse{CompanyName: "Acme GmbH", NeedsReminder: true},
		PlaceholderInvoice: "AUTO-1",
	}, nil)

	w := doJSON(t, f.router, http.MethodPost, "/clients", req)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "AUTO-1", data["placeholder_invoice"])
}

func TestClientHandler_Create_MissingName(t *testing.T) {
	f := newClientFixture(t)

	w := doJSON(t, f.router, http.MethodPost, "/clients", map[string]any{"emails": []string{"a@b.test"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	require.NotEmpty(t, resp.Error.Fields)
	assert.Equal(t, "company_name", resp.Error.Fields[0].Field)
}

func TestClientHandler_Update_ConfirmationRequired(t *testing.T) {
	f := newClientFixture(t)
	id := uuid.New()
	req := partnerapp.ClientRequest{CompanyName: "Acme"}
	confirmErr := shared.ErrConfirmationRequired.WithDetails(map[string]any{"receivables": 2})
	f.commands.On("Update", mock.Anything, f.tenantID, id, req).Return(nil, confirmErr)

	w := doJSON(t, f.router, http.MethodPut, "/clients/"+id.String(), req)

	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeConfirmationRequired, resp.Error.Code)
	assert.EqualValues(t, 2, resp.Error.Details["receivables"])
}

func TestClientHandler_Delete(t *testing.T) {
	f := newClientFixture(t)
	id := uuid.New()
	f.commands.On("Delete", mock.Anything, f.tenantID, id).Return(nil)

	w := doJSON(t, f.router, http.MethodDelete, "/clients/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestClientHandler_BulkDelete(t *testing.T) {
	t.Run("returns refetched list", func(t *testing.T) {
		f := newClientFixture(t)
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		req := partnerapp.BulkDeleteRequest{IDs: ids, Confirm: true}
		f.list.On("BulkDelete", mock.Anything, f.viewer(), req).Return(&partnerapp.BulkDeleteResponse{
			DeletedClients:     2,
			DeletedReceivables: 5,
			List:               &partnerapp.ClientListResponse{Items: []partnerapp.ClientRow{}},
		}, nil)

		w := doJSON(t, f.router, http.MethodPost, "/clients/bulk-delete", req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.EqualValues(t, 2, data["deleted_clients"])
		assert.EqualValues(t, 5, data["deleted_receivables"])
	})

	t.Run("empty selection", func(t *testing.T) {
		f := newClientFixture(t)
		req := partnerapp.BulkDeleteRequest{Confirm: true}
		f.list.On("BulkDelete", mock.Anything, f.viewer(), req).
			Return(nil, shared.NewDomainError("EMPTY_SELECTION", "No clients selected"))

		w := doJSON(t, f.router, http.MethodPost, "/clients/bulk-delete", req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeEmptySelection, decodeResponse(t, w).Error.Code)
	})

	t.Run("expired subscription", func(t *testing.T) {
		f := newClientFixture(t)
		req := partnerapp.BulkDeleteRequest{IDs: []uuid.UUID{uuid.New()}, Confirm: true}
		f.list.On("BulkDelete", mock.Anything, f.viewer(), req).
			Return(nil, shared.ErrSubscriptionExpired.WithDetails(map[string]any{"show_modal": true}))

		w := doJSON(t, f.router, http.MethodPost, "/clients/bulk-delete", req)

		require.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Equal(t, true, decodeResponse(t, w).Error.Details["show_modal"])
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		f := newClientFixture(t)
		req := partnerapp.BulkDeleteRequest{IDs: []uuid.UUID{uuid.New()}, Confirm: true}
		f.list.On("BulkDelete", mock.Anything, f.viewer(), req).Return(nil, errors.New("pq: connection reset"))

		w := doJSON(t, f.router, http.MethodPost, "/clients/bulk-delete", req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "pq")
	})
}
