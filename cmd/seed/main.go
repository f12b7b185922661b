package main

import (
	"log"

	"github.com/CircuitOps/CM-Backend/internal/billing"
	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/CircuitOps/CM-Backend/internal/config"
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/seeds"
	"github.com/CircuitOps/CM-Backend/internal/tickets"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()
	db.Connect(cfg.DatabaseURL)

	circuits.Init()
	billing.Init()
	tickets.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
