package carrier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/CircuitOps/CM-Backend/internal/billing"
	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/paths"
	"github.com/CircuitOps/CM-Backend/internal/tickets"
)

// SyncStats summarizes one synchronization pass.
type SyncStats struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// Syncer drives carrier synchronization against the configured registry.
type Syncer struct {
	Registry *Registry
}

func NewSyncer() *Syncer {
	return &Syncer{Registry: DefaultRegistry}
}

// SyncAll runs every enabled API configuration and returns per-config stats
// keyed by config ID. A failing config does not stop the others.
func (s *Syncer) SyncAll(ctx context.Context) (map[string]SyncStats, error) {
	var configs []APIConfig
	if err := db.DB.Preload("Provider").Find(&configs, "sync_enabled = ?", true).Error; err != nil {
		return nil, fmt.Errorf("loading API configs: %w", err)
	}

	results := make(map[string]SyncStats, len(configs))
	for _, cfg := range configs {
		results[cfg.ID.String()] = s.SyncConfig(ctx, cfg)
	}
	return results, nil
}

// SyncConfig synchronizes one carrier configuration: authenticate, list
// circuits, and for each one matched by CID upsert costs, tickets, and the
// optional path. Per-circuit failures are recorded in the stats and the
// SyncRun row; they do not abort the pass.
func (s *Syncer) SyncConfig(ctx context.Context, cfg APIConfig) SyncStats {
	run := SyncRun{APIConfigID: cfg.ID, StartedAt: time.Now()}
	stats := SyncStats{}

	provider, err := s.buildProvider(cfg)
	if err != nil {
		return s.finishRun(cfg, run, stats, err)
	}

	if err := provider.Authenticate(ctx); err != nil {
		return s.finishRun(cfg, run, stats, fmt.Errorf("authentication failed: %w", err))
	}

	remote, err := provider.FetchCircuits(ctx)
	if err != nil {
		return s.finishRun(cfg, run, stats, fmt.Errorf("fetching circuits: %w", err))
	}
	stats.Total = len(remote)

	for _, summary := range remote {
		if err := s.syncCircuit(ctx, provider, cfg, summary); err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, err.Error())
			continue
		}
		stats.Succeeded++
	}

	return s.finishRun(cfg, run, stats, nil)
}

func (s *Syncer) buildProvider(cfg APIConfig) (Provider, error) {
	construct, err := s.Registry.Get(cfg.ProviderType)
	if err != nil {
		return nil, err
	}
	return construct(cfg), nil
}

func (s *Syncer) syncCircuit(ctx context.Context, provider Provider, cfg APIConfig, summary NormalizedCircuit) error {
	var circuit circuits.Circuit
	err := db.DB.First(&circuit, "cid = ? AND provider_id = ?", summary.CID, cfg.ProviderID).Error
	if err != nil {
		return fmt.Errorf("circuit not found in inventory: %s", summary.CID)
	}

	detail, err := provider.FetchCircuitDetail(ctx, summary.CID)
	if err != nil {
		return fmt.Errorf("fetching detail for %s: %w", summary.CID, err)
	}

	if detail.Billing != nil {
		if err := s.upsertCost(circuit, *detail.Billing); err != nil {
			return fmt.Errorf("syncing cost for %s: %w", summary.CID, err)
		}
	}

	for _, t := range detail.Tickets {
		if err := s.upsertTicket(circuit, t); err != nil {
			return fmt.Errorf("syncing ticket %s for %s: %w", t.TicketNumber, summary.CID, err)
		}
	}

	if len(detail.PathKML) > 0 {
		fileName := fmt.Sprintf("%s-%s.kml", provider.Name(), summary.CID)
		if err := paths.UpsertFromKML(circuit.ID, detail.PathKML, fileName); err != nil {
			return fmt.Errorf("syncing path for %s: %w", summary.CID, err)
		}
	}

	return nil
}

func (s *Syncer) upsertCost(circuit circuits.Circuit, b NormalizedBilling) error {
	currency := b.Currency
	if !billing.ValidCurrency(currency) {
		currency = "USD"
	}

	now := time.Now()
	var cost billing.CircuitCost
	if err := db.DB.First(&cost, "circuit_id = ?", circuit.ID).Error; err != nil {
		cost = billing.CircuitCost{CircuitID: circuit.ID}
	}
	cost.NRC = b.NRC
	cost.MRC = b.MRC
	cost.Currency = currency
	cost.BillingAccount = b.AccountNumber
	cost.LastUpdatedDate = &now

	return db.DB.Save(&cost).Error
}

func (s *Syncer) upsertTicket(circuit circuits.Circuit, t NormalizedTicket) error {
	if t.TicketNumber == "" {
		return fmt.Errorf("ticket without a ticket_number")
	}

	var ticket tickets.CircuitTicket
	if err := db.DB.First(&ticket, "ticket_number = ?", t.TicketNumber).Error; err != nil {
		ticket = tickets.CircuitTicket{TicketNumber: t.TicketNumber}
	}
	ticket.CircuitID = circuit.ID
	ticket.Subject = t.Subject
	ticket.Status = t.Status
	ticket.Priority = t.Priority
	ticket.Description = t.Description
	ticket.ExternalURL = t.ExternalURL

	return db.DB.Save(&ticket).Error
}

// finishRun persists the SyncRun, updates the config's sync bookkeeping, and
// folds a fatal error (if any) into the stats.
func (s *Syncer) finishRun(cfg APIConfig, run SyncRun, stats SyncStats, fatal error) SyncStats {
	if fatal != nil {
		stats.Errors = append(stats.Errors, fatal.Error())
	}

	run.FinishedAt = time.Now()
	run.Total = stats.Total
	run.Succeeded = stats.Succeeded
	run.Failed = stats.Failed
	run.Errors = stats.Errors

	now := time.Now()
	status := fmt.Sprintf("Success: %d/%d", stats.Succeeded, stats.Total)
	if fatal != nil {
		status = fmt.Sprintf("Failed: %s", fatal.Error())
	}
	run.Status = status

	if err := db.DB.Create(&run).Error; err != nil {
		log.Printf("failed to persist sync run for config %s: %v", cfg.ID, err)
	}
	if err := db.DB.Model(&APIConfig{}).Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{"last_sync": now, "sync_status": status}).Error; err != nil {
		log.Printf("failed to update sync status for config %s: %v", cfg.ID, err)
	}

	return stats
}

// TestResult reports a connection check.
type TestResult struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	ResponseTime float64 `json:"response_time"`
}

// TestConnection authenticates against the configured carrier without
// syncing anything.
func (s *Syncer) TestConnection(ctx context.Context, cfg APIConfig) TestResult {
	provider, err := s.buildProvider(cfg)
	if err != nil {
		return TestResult{Success: false, Message: err.Error()}
	}

	start := time.Now()
	if err := provider.Authenticate(ctx); err != nil {
		return TestResult{Success: false, Message: "Authentication failed: " + err.Error()}
	}

	return TestResult{
		Success:      true,
		Message:      "Connection successful",
		ResponseTime: time.Since(start).Seconds(),
	}
}
