package paths

import (
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/auth"
	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/{circuit_id}", GetPath)
	r.Get("/{circuit_id}/render", RenderPath)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))

		r.Post("/{circuit_id}/upload", UploadPath)
		r.Put("/{circuit_id}", UpdatePath)
		r.Delete("/{circuit_id}", DeletePath)
	})

	return r
}
