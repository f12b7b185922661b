package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/auth"
	"github.com/CircuitOps/CM-Backend/internal/billing"
	"github.com/CircuitOps/CM-Backend/internal/carrier"
	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/CircuitOps/CM-Backend/internal/config"
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/CircuitOps/CM-Backend/internal/paths"
	"github.com/CircuitOps/CM-Backend/internal/tickets"
	"github.com/CircuitOps/CM-Backend/internal/webhooks"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()

	db.Connect(cfg.DatabaseURL)

	auth.Init()
	circuits.Init()
	billing.Init()
	tickets.Init()
	paths.Init(cfg)
	carrier.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/circuits", circuits.SetupRoutes())
	r.Mount("/billing", billing.SetupRoutes())
	r.Mount("/tickets", tickets.SetupRoutes())
	r.Mount("/paths", paths.SetupRoutes())
	r.Mount("/carrier", carrier.SetupRoutes())
	r.Mount("/webhooks", webhooks.SetupRoutes())

	log.Printf("Server listening on port :%s...", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
