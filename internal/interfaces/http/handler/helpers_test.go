package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityapp "github.com/paymentflow/backend/internal/application/identity"
	notificationapp "github.com/paymentflow/backend/internal/application/notification"
	partnerapp "github.com/paymentflow/backend/internal/application/partner"
	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/interfaces/http/dto"
	"github.com/paymentflow/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestRouter returns an engine that authenticates every request as
// tenantID/userID; uuid.Nil leaves the request anonymous.
func newTestRouter(tenantID, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "req-test")
		if tenantID != uuid.Nil {
			c.Set(middleware.JWTTenantIDKey, tenantID)
			c.Set(middleware.JWTUserIDKey, userID)
		}
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// =============================================================================
// Mocks
// =============================================================================

type mockClientCommands struct{ mock.Mock }

func (m *mockClientCommands) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*partnerapp.ClientResponse, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.ClientResponse), args.Error(1)
}

func (m *mockClientCommands) Create(ctx context.Context, tenantID uuid.UUID, req partnerapp.ClientRequest) (*partnerapp.SubmitResult, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.SubmitResult), args.Error(1)
}

func (m *mockClientCommands) Update(ctx context.Context, tenantID, clientID uuid.UUID, req partnerapp.ClientRequest) (*partnerapp.SubmitResult, error) {
	args := m.Called(ctx, tenantID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.SubmitResult), args.Error(1)
}

func (m *mockClientCommands) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	return m.Called(ctx, tenantID, clientID).Error(0)
}

type mockClientList struct{ mock.Mock }

func (m *mockClientList) List(ctx context.Context, v partnerapp.Viewer, q partnerapp.ListQuery) (*partnerapp.ClientListResponse, error) {
	args := m.Called(ctx, v, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.ClientListResponse), args.Error(1)
}

func (m *mockClientList) GetSortConfig(ctx context.Context, v partnerapp.Viewer) listing.SortConfig {
	return m.Called(ctx, v).Get(0).(listing.SortConfig)
}

func (m *mockClientList) ClickHeader(ctx context.Context, v partnerapp.Viewer, column string) (listing.SortConfig, error) {
	args := m.Called(ctx, v, column)
	return args.Get(0).(listing.SortConfig), args.Error(1)
}

func (m *mockClientList) ClearSortConfig(ctx context.Context, v partnerapp.Viewer) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockClientList) BulkDelete(ctx context.Context, v partnerapp.Viewer, req partnerapp.BulkDeleteRequest) (*partnerapp.BulkDeleteResponse, error) {
	args := m.Called(ctx, v, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.BulkDeleteResponse), args.Error(1)
}

type mockEmailRelay struct{ mock.Mock }

func (m *mockEmailRelay) Send(ctx context.Context, tenantID uuid.UUID, req notificationapp.SendEmailsRequest) (*notification.Result, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Result), args.Error(1)
}

type mockSettingsStore struct{ mock.Mock }

func (m *mockSettingsStore) Get(ctx context.Context, tenantID uuid.UUID) (*notificationapp.EmailSettingsResponse, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.EmailSettingsResponse), args.Error(1)
}

func (m *mockSettingsStore) Update(ctx context.Context, tenantID uuid.UUID, req notificationapp.SMTPSettingsRequest) (*notificationapp.EmailSettingsResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.EmailSettingsResponse), args.Error(1)
}

type stubSubscriptions struct {
	resp *identityapp.SubscriptionResponse
	err  error
}

func (s stubSubscriptions) Get(context.Context, uuid.UUID) (*identityapp.SubscriptionResponse, error) {
	return s.resp, s.err
}
