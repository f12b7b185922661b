package carrier

import (
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/auth"
	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/types", ListProviderTypes)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(sessionFetcher))

		r.Get("/configs", ListConfigs)
		r.Post("/configs", CreateConfig)
		r.Get("/configs/{config_id}", GetConfig)
		r.Put("/configs/{config_id}", UpdateConfig)
		r.Delete("/configs/{config_id}", DeleteConfig)

		r.Post("/configs/{config_id}/sync", TriggerSync)
		r.Post("/configs/{config_id}/test", TestConfig)
		r.Get("/configs/{config_id}/runs", ListSyncRuns)
	})

	return r
}
