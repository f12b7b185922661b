package carrier

import (
	"log"

	"github.com/CircuitOps/CM-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "carrier"); err != nil {
		log.Fatal("Failed to ensure schema carrier: ", err)
	}

	if err := db.DB.AutoMigrate(&APIConfig{}, &SyncRun{}); err != nil {
		log.Fatal("Failed to auto-migrate carrier tables: ", err)
	}

	log.Println("Carrier module initialized, providers: ", DefaultRegistry.Types())
}
