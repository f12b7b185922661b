package circuits

import (
	"time"

	"github.com/google/uuid"
)

// Provider is a carrier we buy circuits from.
type Provider struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	ASN       *int      `json:"asn,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Circuits []Circuit `gorm:"foreignKey:ProviderID" json:"circuits,omitempty"`
}

func (Provider) TableName() string {
	return "inventory.providers"
}

// Circuit is a provider circuit identified by its carrier-assigned CID.
type Circuit struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CID         string     `gorm:"not null;index:idx_circuit_provider_cid,unique" json:"cid"`
	ProviderID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_circuit_provider_cid,unique" json:"provider_id"`
	Status      string     `gorm:"not null;default:'active'" json:"status"` // active, provisioning, maintenance, decommissioned
	Description string     `json:"description"`
	InstallDate *time.Time `json:"install_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (Circuit) TableName() string {
	return "inventory.circuits"
}
