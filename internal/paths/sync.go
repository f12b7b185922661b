package paths

import (
	"encoding/json"
	"fmt"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/kmz"
	"github.com/google/uuid"
)

// UpsertFromKML stores a circuit path from raw KML bytes, as delivered by a
// carrier API rather than a file upload. Unlike uploads, an unparseable
// document is an error here: there is no user-entered metadata worth keeping.
func UpsertFromKML(circuitID uuid.UUID, kml []byte, fileName string) error {
	fc, center := kmz.ParseKML(kml)
	if fc == nil {
		return fmt.Errorf("carrier path data for circuit %s did not parse as KML", circuitID)
	}

	extracted := pathExtraction{DistanceKm: kmz.DistanceKm(fc)}
	if encoded, err := json.Marshal(fc); err == nil {
		extracted.GeoJSON = encoded
	}
	if center != nil {
		lat, lon := center.Lat, center.Lon
		extracted.CenterLat = &lat
		extracted.CenterLon = &lon
	}

	var path CircuitPath
	if err := db.DB.First(&path, "circuit_id = ?", circuitID).Error; err != nil {
		path = CircuitPath{CircuitID: circuitID, MapZoom: defaultMapZoom}
	}
	path.GeoJSON = extracted.GeoJSON
	path.MapCenterLat = extracted.CenterLat
	path.MapCenterLon = extracted.CenterLon
	path.PathDistanceKm = extracted.DistanceKm
	path.FileName = fileName

	return db.DB.Save(&path).Error
}
