package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects route registrars and mounts them under the API prefix.
// Browser-facing pages register through PageRegistrar at the engine root.
type Router struct {
	engine     *gin.Engine
	apiPrefix  string
	registrars []RouteRegistrar
	pages      []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIPrefix overrides the default "/api" prefix
func WithAPIPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.apiPrefix = prefix
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiPrefix:  "/api",
		registrars: make([]RouteRegistrar, 0),
		pages:      make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds an API registrar to be mounted under the API prefix
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterPages adds a registrar mounted at the engine root
func (r *Router) RegisterPages(registrar RouteRegistrar) *Router {
	r.pages = append(r.pages, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.apiPrefix)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	root := r.engine.Group("/")
	for _, registrar := range r.pages {
		registrar.RegisterRoutes(root)
	}
}
