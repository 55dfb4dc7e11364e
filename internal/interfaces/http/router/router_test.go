package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Use(func(c *gin.Context) {
		c.Header("X-API", "yes")
		c.Next()
	})

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	group.Group("nested", "/nested").DELETE("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-API"))

	w = serve(engine, http.MethodDelete, "/api/v2/test/nested/42")
	assert.Equal(t, "42", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("guarded", "/guarded").Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	})
	g.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.RegisterRoutes(engine.Group("/api"))

	assert.Equal(t, "guarded", g.Name())
	assert.Equal(t, "/guarded", g.Prefix())
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodPost, "/api/guarded/x").Code)
}

func newAPI(t *testing.T, withAttachments bool) *gin.Engine {
	t.Helper()
	h := Handlers{
		Clients:          handler.NewClientHandler(nil, nil),
		Receivables:      handler.NewReceivableHandler(nil),
		ReminderProfiles: handler.NewReminderProfileHandler(nil),
		Emails:           handler.NewEmailHandler(nil, "attachments"),
		Settings:         handler.NewSettingsHandler(nil),
		Subscription:     handler.NewSubscriptionHandler(nil),
	}
	if withAttachments {
		h.Attachments = handler.NewAttachmentHandler(nil, "attachments", 0)
	}
	gate := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusPaymentRequired)
	}

	engine := gin.New()
	NewRouter(engine).Register(DomainGroups(h, gate)...).Setup()
	return engine
}

// Requests carry no tenant: a routed but ungated request reaches its
// handler and answers 401, a gated one stops at the gate with 402.
func TestDomainGroups_Gate(t *testing.T) {
	engine := newAPI(t, true)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/clients", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/clients", http.StatusPaymentRequired},
		{http.MethodGet, "/api/v1/clients/sort-config", http.StatusUnauthorized},
		{http.MethodDelete, "/api/v1/clients/sort-config", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/clients/sort", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/clients/bulk-delete", http.StatusPaymentRequired},
		{http.MethodGet, "/api/v1/clients/7c1a", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/clients/7c1a", http.StatusPaymentRequired},
		{http.MethodDelete, "/api/v1/clients/7c1a", http.StatusPaymentRequired},
		{http.MethodGet, "/api/v1/receivables", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/reminder-profiles/1", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/emails/send", http.StatusPaymentRequired},
		{http.MethodGet, "/api/v1/settings/email", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/settings/email", http.StatusPaymentRequired},
		{http.MethodGet, "/api/v1/subscription", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/attachments/upload-url", http.StatusPaymentRequired},
		{http.MethodGet, "/api/v1/attachments/download-url", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(engine, tt.method, tt.path).Code)
		})
	}
}

func TestDomainGroups_WithoutAttachments(t *testing.T) {
	engine := newAPI(t, false)

	for _, route := range engine.Routes() {
		require.NotContains(t, route.Path, "/attachments")
	}
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodPost, "/api/v1/attachments/upload-url").Code)
}

func TestDomainGroups_NilGate(t *testing.T) {
	h := Handlers{
		Clients:          handler.NewClientHandler(nil, nil),
		Receivables:      handler.NewReceivableHandler(nil),
		ReminderProfiles: handler.NewReminderProfileHandler(nil),
		Emails:           handler.NewEmailHandler(nil, ""),
		Settings:         handler.NewSettingsHandler(nil),
		Subscription:     handler.NewSubscriptionHandler(nil),
	}
	engine := gin.New()
	NewRouter(engine).Register(DomainGroups(h, nil)...).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/clients").Code)
}
