package circuits

import (
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/auth"
	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	// Public routes - read-only access to the inventory
	r.Get("/providers", ListProviders)
	r.Get("/", ListCircuits)
	r.Get("/{circuit_id}", GetCircuit)

	// Admin routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))

		r.Post("/providers", CreateProvider)
		r.Post("/", CreateCircuit)
		r.Put("/{circuit_id}", UpdateCircuit)
		r.Delete("/{circuit_id}", DeleteCircuit)
	})

	return r
}
