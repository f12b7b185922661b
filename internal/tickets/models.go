package tickets

import (
	"time"

	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/google/uuid"
)

// CircuitTicket mirrors a support case a carrier opened for a circuit.
// Records may come from the API handlers or from carrier syncs.
type CircuitTicket struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CircuitID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"circuit_id"`
	TicketNumber string     `gorm:"size:100;not null;uniqueIndex" json:"ticket_number"`
	Subject      string     `gorm:"size:255" json:"subject"`
	Status       string     `gorm:"size:30;not null;default:'open'" json:"status"`
	Priority     string     `gorm:"size:30;not null;default:'medium'" json:"priority"`
	OpenedAt     *time.Time `json:"opened_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	Description  string     `json:"description"`
	Resolution   string     `json:"resolution"`
	ExternalURL  string     `gorm:"size:500" json:"external_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Circuit circuits.Circuit `gorm:"foreignKey:CircuitID" json:"circuit,omitempty"`
}

func (CircuitTicket) TableName() string {
	return "tickets.circuit_tickets"
}

var validStatuses = map[string]bool{
	"open":        true,
	"in_progress": true,
	"pending":     true,
	"resolved":    true,
	"closed":      true,
}

var validPriorities = map[string]bool{
	"low":      true,
	"medium":   true,
	"high":     true,
	"critical": true,
}

func ValidStatus(status string) bool {
	return validStatuses[status]
}

func ValidPriority(priority string) bool {
	return validPriorities[priority]
}
