package router

import (
	"net/http"

	"cs2-inventory-api/internal/handler"
	"cs2-inventory-api/internal/middleware"
	"cs2-inventory-api/pkg/apierror"
	"cs2-inventory-api/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	InventoryHandler *handler.InventoryHandler
	AdminHandler     *handler.AdminHandler
	AdminAPIKeys     []string
	AllowedOrigins   []string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes).
	// RequestID runs first so panic logs carry the id.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierror.NotFound(""))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierror.MethodNotAllowed(""))
	})

	if cfg.Handler != nil {
		r.Get("/", cfg.Handler.Root)
		r.Get("/api/status", cfg.Handler.Status)
	}

	if cfg.InventoryHandler != nil {
		r.Get("/api/inventory/{steamId}", cfg.InventoryHandler.GetInventory)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.AdminHandler != nil {
			r.Group(func(r chi.Router) {
				r.Use(middleware.APIKeyAuth(cfg.AdminAPIKeys))
				r.Get("/admin/stats", cfg.AdminHandler.GetStats)
			})
		}
	})

	return r
}
