package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/tickets"
)

// ticketEvent is the push payload carriers send when a ticket changes.
type ticketEvent struct {
	CID          string `json:"cid"`
	TicketNumber string `json:"ticket_number"`
	Subject      string `json:"subject"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	Description  string `json:"description"`
	URL          string `json:"url"`
}

// CarrierTicketWebhook ingests pushed ticket updates between sync runs.
// Deliveries are authenticated with an HMAC over body plus delivery id.
func CarrierTicketWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "payload too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}
	defer r.Body.Close()

	sig := r.Header.Get("X-Carrier-Signature")
	deliveryID := r.Header.Get("X-Carrier-Delivery-Id")
	if deliveryID == "" {
		http.Error(w, "missing delivery id", http.StatusBadRequest)
		return
	}

	secret := os.Getenv("CARRIER_WEBHOOK_SECRET")
	if secret == "" {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}
	if !verifySignature(sig, deliveryID, raw, secret) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event ticketEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if event.CID == "" || event.TicketNumber == "" {
		http.Error(w, "cid and ticket_number are required", http.StatusBadRequest)
		return
	}

	var circuit circuits.Circuit
	if err := db.DB.First(&circuit, "cid = ?", event.CID).Error; err != nil {
		http.Error(w, "unknown circuit", http.StatusNotFound)
		return
	}

	status := event.Status
	if !tickets.ValidStatus(status) {
		status = "open"
	}
	priority := event.Priority
	if !tickets.ValidPriority(priority) {
		priority = "medium"
	}

	var ticket tickets.CircuitTicket
	if err := db.DB.First(&ticket, "ticket_number = ?", event.TicketNumber).Error; err != nil {
		ticket = tickets.CircuitTicket{TicketNumber: event.TicketNumber}
	}
	ticket.CircuitID = circuit.ID
	ticket.Subject = event.Subject
	ticket.Status = status
	ticket.Priority = priority
	ticket.Description = event.Description
	ticket.ExternalURL = event.URL

	if err := db.DB.Save(&ticket).Error; err != nil {
		http.Error(w, "db upsert failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}

func verifySignature(sig, deliveryID string, raw []byte, secret string) bool {
	if !strings.HasPrefix(sig, "sha256=") {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw)
	mac.Write([]byte(deliveryID))
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}
