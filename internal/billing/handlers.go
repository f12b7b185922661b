package billing

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetCost returns the cost record for a circuit.
func GetCost(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	var cost CircuitCost
	if err := db.DB.Preload("Circuit").First(&cost, "circuit_id = ?", circuitID).Error; err != nil {
		http.Error(w, "Cost record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cost)
}

// UpsertCost creates or replaces the single cost record of a circuit (admin only).
func UpsertCost(w http.ResponseWriter, r *http.Request) {
	circuitID, err := uuid.Parse(chi.URLParam(r, "circuit_id"))
	if err != nil {
		http.Error(w, "Invalid circuit id", http.StatusBadRequest)
		return
	}

	var input CircuitCost
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.Currency == "" {
		input.Currency = "USD"
	}
	if !ValidCurrency(input.Currency) {
		http.Error(w, "Invalid ISO 4217 currency code: "+input.Currency, http.StatusBadRequest)
		return
	}
	if (input.NRC != nil && *input.NRC < 0) || (input.MRC != nil && *input.MRC < 0) {
		http.Error(w, "Charges must be non-negative", http.StatusBadRequest)
		return
	}

	now := time.Now()
	var cost CircuitCost
	err = db.DB.First(&cost, "circuit_id = ?", circuitID).Error
	if err != nil {
		cost = CircuitCost{CircuitID: circuitID}
	}
	cost.NRC = input.NRC
	cost.MRC = input.MRC
	cost.Currency = input.Currency
	cost.BillingAccount = input.BillingAccount
	cost.LastUpdatedDate = &now

	if err := db.DB.Save(&cost).Error; err != nil {
		http.Error(w, "Failed to save cost record: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cost)
}

// DeleteCost removes the cost record of a circuit (admin only).
func DeleteCost(w http.ResponseWriter, r *http.Request) {
	circuitID := chi.URLParam(r, "circuit_id")

	if err := db.DB.Delete(&CircuitCost{}, "circuit_id = ?", circuitID).Error; err != nil {
		http.Error(w, "Failed to delete cost record: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListContracts returns contracts, optionally filtered by circuit or by
// expiry horizon (?expiring_within=<days> matches contracts whose end date
// falls inside the window).
func ListContracts(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&CircuitContract{}).Order("start_date DESC")

	if circuitID := r.URL.Query().Get("circuit_id"); circuitID != "" {
		query = query.Where("circuit_id = ?", circuitID)
	}
	if window := r.URL.Query().Get("expiring_within"); window != "" {
		days, err := strconv.Atoi(window)
		if err != nil || days < 0 {
			http.Error(w, "Invalid expiring_within value", http.StatusBadRequest)
			return
		}
		now := time.Now()
		query = query.Where("end_date IS NOT NULL AND end_date BETWEEN ? AND ?",
			now, now.AddDate(0, 0, days))
	}

	var contracts []CircuitContract
	if err := query.Find(&contracts).Error; err != nil {
		http.Error(w, "Failed to fetch contracts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contracts)
}

// GetContract returns a single contract.
func GetContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contract_id")

	var contract CircuitContract
	if err := db.DB.Preload("Circuit").First(&contract, "id = ?", contractID).Error; err != nil {
		http.Error(w, "Contract not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contract)
}

// CreateContract records a new contract (admin only).
func CreateContract(w http.ResponseWriter, r *http.Request) {
	var contract CircuitContract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if contract.CircuitID == uuid.Nil || contract.ContractNumber == "" || contract.StartDate.IsZero() {
		http.Error(w, "circuit_id, contract_number and start_date are required", http.StatusBadRequest)
		return
	}
	if contract.EarlyTerminationFee != nil && *contract.EarlyTerminationFee < 0 {
		http.Error(w, "early_termination_fee must be non-negative", http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&contract).Error; err != nil {
		http.Error(w, "Failed to create contract: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contract)
}

// UpdateContract updates mutable contract fields (admin only).
func UpdateContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contract_id")

	var contract CircuitContract
	if err := db.DB.First(&contract, "id = ?", contractID).Error; err != nil {
		http.Error(w, "Contract not found", http.StatusNotFound)
		return
	}

	var updates struct {
		EndDate           *time.Time `json:"end_date,omitempty"`
		TermMonths        *int       `json:"term_months,omitempty"`
		AutoRenew         *bool      `json:"auto_renew,omitempty"`
		RenewalNoticeDays *int       `json:"renewal_notice_days,omitempty"`
		Notes             *string    `json:"notes,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updateMap := make(map[string]interface{})
	if updates.EndDate != nil {
		updateMap["end_date"] = *updates.EndDate
	}
	if updates.TermMonths != nil {
		updateMap["term_months"] = *updates.TermMonths
	}
	if updates.AutoRenew != nil {
		updateMap["auto_renew"] = *updates.AutoRenew
	}
	if updates.RenewalNoticeDays != nil {
		updateMap["renewal_notice_days"] = *updates.RenewalNoticeDays
	}
	if updates.Notes != nil {
		updateMap["notes"] = *updates.Notes
	}

	if err := db.DB.Model(&contract).Updates(updateMap).Error; err != nil {
		http.Error(w, "Failed to update contract: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contract)
}

// DeleteContract removes a contract (admin only).
func DeleteContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contract_id")

	if err := db.DB.Delete(&CircuitContract{}, "id = ?", contractID).Error; err != nil {
		http.Error(w, "Failed to delete contract: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
