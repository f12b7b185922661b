package seeds

import (
	"fmt"
	"log"
	"time"

	"github.com/CircuitOps/CM-Backend/internal/billing"
	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/tickets"
	"gorm.io/gorm"
)

var providerSeeds = []circuits.Provider{
	{Name: "Lumen", Slug: "lumen", ASN: intPtr(3356)},
	{Name: "Zayo", Slug: "zayo", ASN: intPtr(6461)},
	{Name: "AT&T", Slug: "att", ASN: intPtr(7018)},
}

type circuitSeed struct {
	ProviderSlug string
	CID          string
	Status       string
	Description  string
	InstallDate  string
}

var circuitSeeds = []circuitSeed{
	{"lumen", "LVLT-100-SFO-OAK", "active", "10G wave, SFO to Oakland", "2023-04-12"},
	{"lumen", "LVLT-200-SFO-SJC", "active", "100G wave, SFO to San Jose", "2024-01-30"},
	{"zayo", "ZAYO-4411-DEN", "provisioning", "Dark fiber pair, Denver metro", ""},
	{"att", "ATT-EL-88213", "active", "Ethernet local loop, Dallas", "2022-09-01"},
}

func SeedProviders() error {
	for _, p := range providerSeeds {
		var existing circuits.Provider
		err := db.DB.First(&existing, "slug = ?", p.Slug).Error
		if err == nil {
			log.Printf("Provider exists, skipping: %s", p.Name)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on provider %s: %w", p.Name, err)
		}
		if err := db.DB.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create provider %s: %w", p.Name, err)
		}
	}
	log.Printf("Seeded %d providers", len(providerSeeds))
	return nil
}

func SeedCircuits() error {
	for _, s := range circuitSeeds {
		var provider circuits.Provider
		if err := db.DB.First(&provider, "slug = ?", s.ProviderSlug).Error; err != nil {
			return fmt.Errorf("provider %s missing for circuit %s: %w", s.ProviderSlug, s.CID, err)
		}

		var existing circuits.Circuit
		err := db.DB.First(&existing, "cid = ? AND provider_id = ?", s.CID, provider.ID).Error
		if err == nil {
			log.Printf("Circuit exists, skipping: %s", s.CID)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on circuit %s: %w", s.CID, err)
		}

		circuit := circuits.Circuit{
			CID:         s.CID,
			ProviderID:  provider.ID,
			Status:      s.Status,
			Description: s.Description,
		}
		if s.InstallDate != "" {
			d, err := time.Parse("2006-01-02", s.InstallDate)
			if err != nil {
				return fmt.Errorf("bad install date for %s: %w", s.CID, err)
			}
			circuit.InstallDate = &d
		}
		if err := db.DB.Create(&circuit).Error; err != nil {
			return fmt.Errorf("failed to create circuit %s: %w", s.CID, err)
		}
	}
	log.Printf("Seeded %d circuits", len(circuitSeeds))
	return nil
}

func SeedBilling() error {
	circuit, err := findCircuit("LVLT-100-SFO-OAK")
	if err != nil {
		return err
	}

	var existingCost billing.CircuitCost
	if err := db.DB.First(&existingCost, "circuit_id = ?", circuit.ID).Error; err == gorm.ErrRecordNotFound {
		now := time.Now()
		cost := billing.CircuitCost{
			CircuitID:       circuit.ID,
			NRC:             floatPtr(1500),
			MRC:             floatPtr(450.25),
			Currency:        "USD",
			BillingAccount:  "ACCT-30917",
			LastUpdatedDate: &now,
		}
		if err := db.DB.Create(&cost).Error; err != nil {
			return fmt.Errorf("failed to create seed cost: %w", err)
		}
	}

	var existingContract billing.CircuitContract
	if err := db.DB.First(&existingContract, "circuit_id = ?", circuit.ID).Error; err == gorm.ErrRecordNotFound {
		start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(3, 0, 0)
		contract := billing.CircuitContract{
			CircuitID:         circuit.ID,
			ContractNumber:    "CTR-2023-0412",
			StartDate:         start,
			EndDate:           &end,
			TermMonths:        intPtr(36),
			AutoRenew:         true,
			RenewalNoticeDays: intPtr(90),
			Notes:             "Standard 36-month wave agreement",
		}
		if err := db.DB.Create(&contract).Error; err != nil {
			return fmt.Errorf("failed to create seed contract: %w", err)
		}
	}

	log.Println("Seeded billing records")
	return nil
}

func SeedTickets() error {
	circuit, err := findCircuit("LVLT-100-SFO-OAK")
	if err != nil {
		return err
	}

	var existing tickets.CircuitTicket
	if err := db.DB.First(&existing, "ticket_number = ?", "TKT-900331").Error; err == gorm.ErrRecordNotFound {
		opened := time.Now().AddDate(0, 0, -3)
		ticket := tickets.CircuitTicket{
			CircuitID:    circuit.ID,
			TicketNumber: "TKT-900331",
			Subject:      "Intermittent CRC errors on SFO side",
			Status:       "in_progress",
			Priority:     "high",
			OpenedAt:     &opened,
			Description:  "Errors observed during evening peak, dispatch scheduled.",
		}
		if err := db.DB.Create(&ticket).Error; err != nil {
			return fmt.Errorf("failed to create seed ticket: %w", err)
		}
	}

	log.Println("Seeded tickets")
	return nil
}

func findCircuit(cid string) (circuits.Circuit, error) {
	var circuit circuits.Circuit
	if err := db.DB.First(&circuit, "cid = ?", cid).Error; err != nil {
		return circuit, fmt.Errorf("seed circuit %s missing: %w", cid, err)
	}
	return circuit, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
