package paths

import (
	"log"

	"github.com/CircuitOps/CM-Backend/internal/config"
	"github.com/CircuitOps/CM-Backend/internal/db"
)

func Init(cfg config.Config) {
	maxUploadBytes = cfg.MaxUploadBytes
	defaultMapZoom = cfg.DefaultMapZoom

	if err := db.EnsureSchema(db.DB, "paths"); err != nil {
		log.Fatal("Failed to ensure schema paths: ", err)
	}

	if err := db.DB.AutoMigrate(&CircuitPath{}); err != nil {
		log.Fatal("Failed to auto-migrate paths tables: ", err)
	}

	log.Println("Paths module initialized")
}
