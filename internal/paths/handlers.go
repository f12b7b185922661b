package paths

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/kmz"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var (
	maxUploadBytes int64 = 20 << 20
	defaultMapZoom       = 10
)

// pathExtraction is what the geometry pipeline recovered from an upload.
// All fields nil/empty means the file could not be parsed.
type pathExtraction struct {
	GeoJSON    []byte
	CenterLat  *float64
	CenterLon  *float64
	DistanceKm *float64
}

// extractPath runs the KMZ pipeline over an uploaded file, falling back to
// treating the bytes as bare KML when they are not a zip archive. Parse
// failures yield an empty extraction, never an error.
func extractPath(data []byte, filename string) pathExtraction {
	fc, center := kmz.ParseArchive(data)
	if fc == nil && !strings.HasSuffix(strings.ToLower(filename), ".kmz") {
		fc, center = kmz.ParseKML(data)
	}
	if fc == nil {
		return pathExtraction{}
	}

	var out pathExtraction
	if encoded, err := json.Marshal(fc); err == nil {
		out.GeoJSON = encoded
	}
	if center != nil {
		lat, lon := center.Lat, center.Lon
		out.CenterLat = &lat
		out.CenterLon = &lon
	}
	out.DistanceKm = kmz.DistanceKm(fc)
	return out
}

// UploadPath accepts a multipart KMZ/KML upload for a circuit and stores the
// extracted geometry. An unparseable file still saves the record; the
// geometry columns just stay null.
func UploadPath(w http.ResponseWriter, r *http.Request) {
	circuitID, err := uuid.Parse(chi.URLParam(r, "circuit_id"))
	if err != nil {
		http.Error(w, "Invalid circuit id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Upload too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	extracted := extractPath(data, header.Filename)

	var path CircuitPath
	if err := db.DB.First(&path, "circuit_id = ?", circuitID).Error; err != nil {
		path = CircuitPath{CircuitID: circuitID, MapZoom: defaultMapZoom}
	}
	path.GeoJSON = extracted.GeoJSON
	path.MapCenterLat = extracted.CenterLat
	path.MapCenterLon = extracted.CenterLon
	path.PathDistanceKm = extracted.DistanceKm
	path.FileName = header.Filename
	if notes := r.FormValue("path_notes"); notes != "" {
		path.PathNotes = notes
	}

	if err := db.DB.Save(&path).Error; err != nil {
		http.Error(w, "Failed to save path: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(path)
}

// GetPath returns the stored path record for a circuit.
func GetPath(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	var path CircuitPath
	if err := db.DB.First(&path, "circuit_id = ?", circuitID).Error; err != nil {
		http.Error(w, "Path not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(path)
}

// RenderPath returns the map payload for a circuit in one response:
// FeatureCollection, center, and zoom.
func RenderPath(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	var path CircuitPath
	if err := db.DB.First(&path, "circuit_id = ?", circuitID).Error; err != nil {
		http.Error(w, "Path not found", http.StatusNotFound)
		return
	}

	payload := struct {
		GeoJSON    json.RawMessage `json:"geojson"`
		CenterLat  *float64        `json:"map_center_lat"`
		CenterLon  *float64        `json:"map_center_lon"`
		Zoom       int             `json:"map_zoom"`
		DistanceKm *float64        `json:"path_distance_km"`
	}{
		CenterLat:  path.MapCenterLat,
		CenterLon:  path.MapCenterLon,
		Zoom:       path.MapZoom,
		DistanceKm: path.PathDistanceKm,
	}
	if len(path.GeoJSON) > 0 {
		payload.GeoJSON = json.RawMessage(path.GeoJSON)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// UpdatePath updates the editable presentation fields (admin only).
func UpdatePath(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	var path CircuitPath
	if err := db.DB.First(&path, "circuit_id = ?", circuitID).Error; err != nil {
		http.Error(w, "Path not found", http.StatusNotFound)
		return
	}

	var updates struct {
		MapZoom   *int    `json:"map_zoom,omitempty"`
		PathNotes *string `json:"path_notes,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updateMap := make(map[string]interface{})
	if updates.MapZoom != nil {
		if *updates.MapZoom < 0 || *updates.MapZoom > 22 {
			http.Error(w, "map_zoom must be between 0 and 22", http.StatusBadRequest)
			return
		}
		updateMap["map_zoom"] = *updates.MapZoom
	}
	if updates.PathNotes != nil {
		updateMap["path_notes"] = *updates.PathNotes
	}

	if err := db.DB.Model(&path).Updates(updateMap).Error; err != nil {
		http.Error(w, "Failed to update path: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(path)
}

// DeletePath removes the path record of a circuit (admin only).
func DeletePath(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	if err := db.DB.Delete(&CircuitPath{}, "circuit_id = ?", circuitID).Error; err != nil {
		http.Error(w, "Failed to delete path: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
