// Package router assembles the versioned API from domain route groups.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paymentflow/backend/internal/interfaces/http/handler"
)

// RouteRegistrar registers routes below the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware that runs for every route of the API group
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one domain under a common prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers bundles the handlers behind /api/v1. Attachments may be nil
// when object storage is disabled.
type Handlers struct {
	Clients          *handler.ClientHandler
	Receivables      *handler.ReceivableHandler
	ReminderProfiles *handler.ReminderProfileHandler
	Emails           *handler.EmailHandler
	Settings         *handler.SettingsHandler
	Attachments      *handler.AttachmentHandler
	Subscription     *handler.SubscriptionHandler
}

// DomainGroups builds the PaymentFlow route groups. gate guards the
// actions a lapsed subscription may not perform; sorting and reading are
// never gated.
func DomainGroups(h Handlers, gate gin.HandlerFunc) []RouteRegistrar {
	if gate == nil {
		gate = func(c *gin.Context) { c.Next() }
	}

	clients := NewDomainGroup("clients", "/clients")
	clients.GET("", h.Clients.List)
	clients.POST("", gate, h.Clients.Create)
	clients.GET("/sort-config", h.Clients.GetSortConfig)
	clients.DELETE("/sort-config", h.Clients.ClearSortConfig)
	clients.POST("/sort", h.Clients.Sort)
	clients.POST("/bulk-delete", gate, h.Clients.BulkDelete)
	clients.GET("/:id", h.Clients.Get)
	clients.PUT("/:id", gate, h.Clients.Update)
	clients.DELETE("/:id", gate, h.Clients.Delete)

	receivables := NewDomainGroup("receivables", "/receivables")
	receivables.GET("", h.Receivables.List)
	receivables.GET("/:id", h.Receivables.Get)

	profiles := NewDomainGroup("reminder-profiles", "/reminder-profiles")
	profiles.GET("", h.ReminderProfiles.List)
	profiles.GET("/:id", h.ReminderProfiles.Get)

	emails := NewDomainGroup("emails", "/emails")
	emails.POST("/send", gate, h.Emails.Send)

	settings := NewDomainGroup("settings", "/settings")
	settings.GET("/email", h.Settings.GetEmail)
	settings.PUT("/email", gate, h.Settings.UpdateEmail)

	subscription := NewDomainGroup("subscription", "/subscription")
	subscription.GET("", h.Subscription.Get)

	groups := []RouteRegistrar{clients, receivables, profiles, emails, settings, subscription}
	if h.Attachments != nil {
		attachments := NewDomainGroup("attachments", "/attachments")
		attachments.POST("/upload-url", gate, h.Attachments.UploadURL)
		attachments.GET("/download-url", h.Attachments.DownloadURL)
		groups = append(groups, attachments)
	}
	return groups
}
