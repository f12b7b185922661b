package carrier

import (
	"time"

	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// APIConfig stores the connection details for one carrier API. The secret
// never leaves the server in responses.
type APIConfig struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProviderID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"provider_id"`
	ProviderType      string     `gorm:"size:50;not null" json:"provider_type"`
	APIEndpoint       string     `gorm:"size:500;not null" json:"api_endpoint"`
	APIKey            string     `gorm:"size:255" json:"api_key"`
	APISecret         string     `gorm:"size:255" json:"-"`
	SyncEnabled       bool       `gorm:"default:true" json:"sync_enabled"`
	SyncIntervalHours int        `gorm:"default:24" json:"sync_interval_hours"`
	LastSync          *time.Time `json:"last_sync,omitempty"`
	SyncStatus        string     `gorm:"size:255" json:"sync_status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Provider circuits.Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (APIConfig) TableName() string {
	return "carrier.api_configs"
}

// SyncRun records the outcome of one synchronization pass.
type SyncRun struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	APIConfigID uuid.UUID      `gorm:"type:uuid;not null;index" json:"api_config_id"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Errors      pq.StringArray `gorm:"type:text[]" json:"errors"`
	Status      string         `gorm:"size:255" json:"status"`
}

func (SyncRun) TableName() string {
	return "carrier.sync_runs"
}
