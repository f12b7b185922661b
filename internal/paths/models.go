package paths

import (
	"time"

	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/google/uuid"
)

// CircuitPath holds the geographic route of a circuit as extracted from an
// uploaded KMZ/KML file. One row per circuit; re-uploading replaces it.
// Geometry fields are all nullable: a failed parse still produces a row so
// the upload (notes, filename) is never lost.
type CircuitPath struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CircuitID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"circuit_id"`
	GeoJSON        []byte    `gorm:"type:jsonb" json:"geojson,omitempty"`
	MapCenterLat   *float64  `gorm:"type:decimal(9,6)" json:"map_center_lat,omitempty"`
	MapCenterLon   *float64  `gorm:"type:decimal(9,6)" json:"map_center_lon,omitempty"`
	MapZoom        int       `gorm:"default:10" json:"map_zoom"`
	PathDistanceKm *float64  `gorm:"type:decimal(10,2)" json:"path_distance_km,omitempty"`
	PathNotes      string    `json:"path_notes"`
	FileName       string    `gorm:"size:255" json:"file_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Circuit circuits.Circuit `gorm:"foreignKey:CircuitID" json:"circuit,omitempty"`
}

func (CircuitPath) TableName() string {
	return "paths.circuit_paths"
}
