package billing

import (
	"time"

	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// CircuitCost tracks NRC and MRC charges for a circuit. One row per circuit.
type CircuitCost struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CircuitID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"circuit_id"`
	NRC             *float64   `gorm:"type:decimal(12,2)" json:"nrc,omitempty"` // non-recurring charge
	MRC             *float64   `gorm:"type:decimal(12,2)" json:"mrc,omitempty"` // monthly recurring charge
	Currency        string     `gorm:"size:3;not null;default:'USD'" json:"currency"`
	BillingAccount  string     `gorm:"size:100" json:"billing_account"`
	LastUpdatedDate *time.Time `gorm:"type:date" json:"last_updated_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Circuit circuits.Circuit `gorm:"foreignKey:CircuitID" json:"circuit,omitempty"`
}

func (CircuitCost) TableName() string {
	return "billing.circuit_costs"
}

// CircuitContract stores contract terms for a circuit. A circuit can carry
// several contracts over its life.
type CircuitContract struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CircuitID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"circuit_id"`
	ContractNumber       string     `gorm:"size:100;not null" json:"contract_number"`
	StartDate            time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate              *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	TermMonths           *int       `json:"term_months,omitempty"`
	AutoRenew            bool       `gorm:"default:false" json:"auto_renew"`
	RenewalNoticeDays    *int       `json:"renewal_notice_days,omitempty"`
	EarlyTerminationFee  *float64   `gorm:"type:decimal(12,2)" json:"early_termination_fee,omitempty"`
	Notes                string     `json:"notes"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Circuit circuits.Circuit `gorm:"foreignKey:CircuitID" json:"circuit,omitempty"`
}

func (CircuitContract) TableName() string {
	return "billing.circuit_contracts"
}

// ValidCurrency reports whether code is a well-formed ISO 4217 unit.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
