package circuits

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListProviders returns all carriers.
func ListProviders(w http.ResponseWriter, r *http.Request) {
	var providers []Provider

	if err := db.DB.Find(&providers).Error; err != nil {
		http.Error(w, "Failed to fetch providers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(providers)
}

// CreateProvider creates a new carrier (admin only).
func CreateProvider(w http.ResponseWriter, r *http.Request) {
	var provider Provider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if provider.Name == "" || provider.Slug == "" {
		http.Error(w, "Name and slug are required", http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&provider).Error; err != nil {
		http.Error(w, "Failed to create provider: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(provider)
}

// ListCircuits returns circuits with optional filtering by provider, status, and CID.
func ListCircuits(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Circuit{}).Preload("Provider")

	if slug := r.URL.Query().Get("provider"); slug != "" {
		var provider Provider
		if err := db.DB.First(&provider, "slug = ?", slug).Error; err != nil {
			http.Error(w, "Provider not found", http.StatusNotFound)
			return
		}
		query = query.Where("provider_id = ?", provider.ID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if cid := r.URL.Query().Get("cid"); cid != "" {
		query = query.Where("cid = ?", cid)
	}

	var circuits []Circuit
	if err := query.Find(&circuits).Error; err != nil {
		http.Error(w, "Failed to fetch circuits: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(circuits)
}

// GetCircuit returns a single circuit with its provider.
func GetCircuit(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	var circuit Circuit
	if err := db.DB.Preload("Provider").First(&circuit, "id = ?", circuitID).Error; err != nil {
		http.Error(w, "Circuit not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(circuit)
}

// CreateCircuit creates a new circuit (admin only).
func CreateCircuit(w http.ResponseWriter, r *http.Request) {
	var circuit Circuit
	if err := json.NewDecoder(r.Body).Decode(&circuit); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if circuit.CID == "" || circuit.ProviderID == uuid.Nil {
		http.Error(w, "cid and provider_id are required", http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&circuit).Error; err != nil {
		http.Error(w, "Failed to create circuit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(circuit)
}

// UpdateCircuit updates mutable circuit fields (admin only).
func UpdateCircuit(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	var circuit Circuit
	if err := db.DB.First(&circuit, "id = ?", circuitID).Error; err != nil {
		http.Error(w, "Circuit not found", http.StatusNotFound)
		return
	}

	var updates struct {
		Status      *string `json:"status,omitempty"`
		Description *string `json:"description,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updateMap := make(map[string]interface{})
	if updates.Status != nil {
		updateMap["status"] = *updates.Status
	}
	if updates.Description != nil {
		updateMap["description"] = *updates.Description
	}

	if err := db.DB.Model(&circuit).Updates(updateMap).Error; err != nil {
		http.Error(w, "Failed to update circuit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Circuit updated successfully")
}

// DeleteCircuit deletes a circuit (admin only).
func DeleteCircuit(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	if err := db.DB.Delete(&Circuit{}, "id = ?", circuitID).Error; err != nil {
		http.Error(w, "Failed to delete circuit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
