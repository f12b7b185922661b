package tickets

import (
	"log"

	"github.com/CircuitOps/CM-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "tickets"); err != nil {
		log.Fatal("Failed to ensure schema tickets: ", err)
	}

	if err := db.DB.AutoMigrate(&CircuitTicket{}); err != nil {
		log.Fatal("Failed to auto-migrate tickets tables: ", err)
	}

	log.Println("Tickets module initialized")
}
