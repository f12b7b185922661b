package billing

import (
	"log"

	"github.com/CircuitOps/CM-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "billing"); err != nil {
		log.Fatal("Failed to ensure schema billing: ", err)
	}

	if err := db.DB.AutoMigrate(&CircuitCost{}, &CircuitContract{}); err != nil {
		log.Fatal("Failed to auto-migrate billing tables: ", err)
	}

	log.Println("Billing module initialized")
}
