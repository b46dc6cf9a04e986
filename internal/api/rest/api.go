package rest

import (
	"net/http"

	"github.com/CameronXie/ecommerce-backend/internal/api/rest/middlewares"
)

// DefaultPrefix is the path every resource route is served under.
const DefaultPrefix = "/api/v1"

// Routes registers a group of routes on a mux under a path prefix.
type Routes interface {
	Register(mux *http.ServeMux, prefix string)
}

type RouterConfig struct {
	Prefix         string
	Routes         []Routes
	HealthHandler  http.Handler
	MetricsHandler http.Handler
	Middlewares    []middlewares.Middleware
}

// NewMuxWithHandlers initializes a new HTTP mux with routes defined by the given RouterConfig.
// Health and metrics are served outside the prefix and bypass the middlewares.
func NewMuxWithHandlers(cfg *RouterConfig) *http.ServeMux {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	api := http.NewServeMux()
	for _, routes := range cfg.Routes {
		routes.Register(api, prefix)
	}

	router := http.NewServeMux()
	router.Handle(prefix+"/", middlewares.Chain(api, cfg.Middlewares...))

	if cfg.HealthHandler != nil {
		router.Handle("GET /health", cfg.HealthHandler)
	}

	if cfg.MetricsHandler != nil {
		router.Handle("GET /metrics", cfg.MetricsHandler)
	}

	return router
}
