package billing

import (
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/auth"
	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/costs/{circuit_id}", GetCost)
	r.Get("/contracts", ListContracts)
	r.Get("/contracts/{contract_id}", GetContract)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))

		r.Put("/costs/{circuit_id}", UpsertCost)
		r.Delete("/costs/{circuit_id}", DeleteCost)

		r.Post("/contracts", CreateContract)
		r.Put("/contracts/{contract_id}", UpdateContract)
		r.Delete("/contracts/{contract_id}", DeleteContract)
	})

	return r
}
