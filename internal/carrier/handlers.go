package carrier

import (
	"encoding/json"
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListProviderTypes returns the provider types available in the registry.
func ListProviderTypes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DefaultRegistry.Types())
}

// ListConfigs returns all API configurations. Secrets are never serialized.
func ListConfigs(w http.ResponseWriter, r *http.Request) {
	var configs []APIConfig
	if err := db.DB.Preload("Provider").Order("created_at").Find(&configs).Error; err != nil {
		http.Error(w, "Failed to fetch configs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(configs)
}

// GetConfig returns one API configuration.
func GetConfig(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "config_id")

	var config APIConfig
	if err := db.DB.Preload("Provider").First(&config, "id = ?", configID).Error; err != nil {
		http.Error(w, "Config not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}

type configInput struct {
	ProviderID        uuid.UUID `json:"provider_id"`
	ProviderType      string    `json:"provider_type"`
	APIEndpoint       string    `json:"api_endpoint"`
	APIKey            string    `json:"api_key"`
	APISecret         string    `json:"api_secret"`
	SyncEnabled       *bool     `json:"sync_enabled,omitempty"`
	SyncIntervalHours *int      `json:"sync_interval_hours,omitempty"`
}

// CreateConfig stores a new carrier API configuration.
func CreateConfig(w http.ResponseWriter, r *http.Request) {
	var input configInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.ProviderID == uuid.Nil || input.ProviderType == "" || input.APIEndpoint == "" {
		http.Error(w, "provider_id, provider_type and api_endpoint are required", http.StatusBadRequest)
		return
	}
	if _, err := DefaultRegistry.Get(input.ProviderType); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	config := APIConfig{
		ProviderID:        input.ProviderID,
		ProviderType:      input.ProviderType,
		APIEndpoint:       input.APIEndpoint,
		APIKey:            input.APIKey,
		APISecret:         input.APISecret,
		SyncEnabled:       true,
		SyncIntervalHours: 24,
	}
	if input.SyncEnabled != nil {
		config.SyncEnabled = *input.SyncEnabled
	}
	if input.SyncIntervalHours != nil {
		config.SyncIntervalHours = *input.SyncIntervalHours
	}

	if err := db.DB.Create(&config).Error; err != nil {
		http.Error(w, "Failed to create config: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(config)
}

// UpdateConfig updates a carrier API configuration. Omitted fields keep
// their stored values, so a secret survives edits that do not resend it.
func UpdateConfig(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "config_id")

	var config APIConfig
	if err := db.DB.First(&config, "id = ?", configID).Error; err != nil {
		http.Error(w, "Config not found", http.StatusNotFound)
		return
	}

	var input configInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.ProviderType != "" {
		if _, err := DefaultRegistry.Get(input.ProviderType); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.ProviderType = input.ProviderType
	}
	if input.APIEndpoint != "" {
		config.APIEndpoint = input.APIEndpoint
	}
	if input.APIKey != "" {
		config.APIKey = input.APIKey
	}
	if input.APISecret != "" {
		config.APISecret = input.APISecret
	}
	if input.SyncEnabled != nil {
		config.SyncEnabled = *input.SyncEnabled
	}
	if input.SyncIntervalHours != nil {
		config.SyncIntervalHours = *input.SyncIntervalHours
	}

	if err := db.DB.Save(&config).Error; err != nil {
		http.Error(w, "Failed to update config: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}

// DeleteConfig removes a carrier API configuration.
func DeleteConfig(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "config_id")

	if err := db.DB.Delete(&APIConfig{}, "id = ?", configID).Error; err != nil {
		http.Error(w, "Failed to delete config: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TriggerSync runs a synchronization pass for one config and returns the stats.
func TriggerSync(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "config_id")

	var config APIConfig
	if err := db.DB.First(&config, "id = ?", configID).Error; err != nil {
		http.Error(w, "Config not found", http.StatusNotFound)
		return
	}

	stats := NewSyncer().SyncConfig(r.Context(), config)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// TestConfig checks authentication against the carrier without syncing.
func TestConfig(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "config_id")

	var config APIConfig
	if err := db.DB.First(&config, "id = ?", configID).Error; err != nil {
		http.Error(w, "Config not found", http.StatusNotFound)
		return
	}

	result := NewSyncer().TestConnection(r.Context(), config)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListSyncRuns returns the run history for one config, newest first.
func ListSyncRuns(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "config_id")

	var runs []SyncRun
	if err := db.DB.Order("started_at DESC").Limit(50).
		Find(&runs, "api_config_id = ?", configID).Error; err != nil {
		http.Error(w, "Failed to fetch sync runs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
