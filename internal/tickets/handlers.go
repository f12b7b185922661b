package tickets

import (
	"encoding/json"
	"net/http"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListTickets returns tickets, newest first, with optional circuit/status/priority filters.
func ListTickets(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&CircuitTicket{}).Order("opened_at DESC NULLS LAST, created_at DESC")

	if circuitID := r.URL.Query().Get("circuit_id"); circuitID != "" {
		query = query.Where("circuit_id = ?", circuitID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !ValidStatus(status) {
			http.Error(w, "Invalid status filter: "+status, http.StatusBadRequest)
			return
		}
		query = query.Where("status = ?", status)
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		if !ValidPriority(priority) {
			http.Error(w, "Invalid priority filter: "+priority, http.StatusBadRequest)
			return
		}
		query = query.Where("priority = ?", priority)
	}

	var tickets []CircuitTicket
	if err := query.Find(&tickets).Error; err != nil {
		http.Error(w, "Failed to fetch tickets: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tickets)
}

// GetTicket returns a single ticket.
func GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticket_id")

	var ticket CircuitTicket
	if err := db.DB.Preload("Circuit").First(&ticket, "id = ?", ticketID).Error; err != nil {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ticket)
}

// CreateTicket records a new ticket (admin only).
func CreateTicket(w http.ResponseWriter, r *http.Request) {
	var ticket CircuitTicket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if ticket.CircuitID == uuid.Nil || ticket.TicketNumber == "" {
		http.Error(w, "circuit_id and ticket_number are required", http.StatusBadRequest)
		return
	}
	if ticket.Status == "" {
		ticket.Status = "open"
	}
	if ticket.Priority == "" {
		ticket.Priority = "medium"
	}
	if !ValidStatus(ticket.Status) {
		http.Error(w, "Invalid status: "+ticket.Status, http.StatusBadRequest)
		return
	}
	if !ValidPriority(ticket.Priority) {
		http.Error(w, "Invalid priority: "+ticket.Priority, http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&ticket).Error; err != nil {
		http.Error(w, "Failed to create ticket: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ticket)
}

// UpdateTicket updates mutable ticket fields (admin only).
func UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticket_id")

	var ticket CircuitTicket
	if err := db.DB.First(&ticket, "id = ?", ticketID).Error; err != nil {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	var updates struct {
		Subject     *string `json:"subject,omitempty"`
		Status      *string `json:"status,omitempty"`
		Priority    *string `json:"priority,omitempty"`
		Description *string `json:"description,omitempty"`
		Resolution  *string `json:"resolution,omitempty"`
		ExternalURL *string `json:"external_url,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updateMap := make(map[string]interface{})
	if updates.Subject != nil {
		updateMap["subject"] = *updates.Subject
	}
	if updates.Status != nil {
		if !ValidStatus(*updates.Status) {
			http.Error(w, "Invalid status: "+*updates.Status, http.StatusBadRequest)
			return
		}
		updateMap["status"] = *updates.Status
	}
	if updates.Priority != nil {
		if !ValidPriority(*updates.Priority) {
			http.Error(w, "Invalid priority: "+*updates.Priority, http.StatusBadRequest)
			return
		}
		updateMap["priority"] = *updates.Priority
	}
	if updates.Description != nil {
		updateMap["description"] = *updates.Description
	}
	if updates.Resolution != nil {
		updateMap["resolution"] = *updates.Resolution
	}
	if updates.ExternalURL != nil {
		updateMap["external_url"] = *updates.ExternalURL
	}

	if err := db.DB.Model(&ticket).Updates(updateMap).Error; err != nil {
		http.Error(w, "Failed to update ticket: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ticket)
}

// DeleteTicket removes a ticket (admin only).
func DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticket_id")

	if err := db.DB.Delete(&CircuitTicket{}, "id = ?", ticketID).Error; err != nil {
		http.Error(w, "Failed to delete ticket: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
