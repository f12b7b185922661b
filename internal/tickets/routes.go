package tickets

import (
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/auth"
	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/", ListTickets)
	r.Get("/{ticket_id}", GetTicket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))

		r.Post("/", CreateTicket)
		r.Put("/{ticket_id}", UpdateTicket)
		r.Delete("/{ticket_id}", DeleteTicket)
	})

	return r
}
