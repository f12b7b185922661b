package circuits

import (
	"log"

	"github.com/CircuitOps/CM-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "inventory"); err != nil {
		log.Fatal("Failed to ensure schema inventory: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(&Provider{}, &Circuit{}); err != nil {
		log.Fatal("Failed to auto-migrate inventory tables: ", err)
	}

	log.Println("Inventory module initialized")
}
