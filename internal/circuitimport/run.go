package circuitimport

import (
	"fmt"
	"log"

	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Config struct {
	CSVPath     string
	DatabaseURL string
}

// Run imports circuits from a CSV export, creating providers as needed and
// upserting circuits on (provider, cid). Existing rows keep their UUIDs.
func Run(cfg Config) error {
	rows, err := ParseCSV(cfg.CSVPath)
	if err != nil {
		return err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		providerBySlug := map[string]circuits.Provider{}

		for _, r := range rows {
			slug := Slugify(r.Provider)
			provider, ok := providerBySlug[slug]
			if !ok {
				provider = circuits.Provider{Name: r.Provider, Slug: slug}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "slug"}},
					DoUpdates: clause.AssignmentColumns([]string{"name"}),
				}).Create(&provider).Error; err != nil {
					return fmt.Errorf("upsert provider %q: %w", r.Provider, err)
				}
				// Re-read so a conflicting insert still yields the stored ID
				if err := tx.First(&provider, "slug = ?", slug).Error; err != nil {
					return fmt.Errorf("load provider %q: %w", slug, err)
				}
				providerBySlug[slug] = provider
			}

			circuit := circuits.Circuit{
				CID:         r.CID,
				ProviderID:  provider.ID,
				Status:      r.Status,
				Description: r.Description,
				InstallDate: r.InstallDate,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "cid"}, {Name: "provider_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "description", "install_date"}),
			}).Create(&circuit).Error; err != nil {
				return fmt.Errorf("upsert circuit %s: %w", r.CID, err)
			}
		}

		log.Printf("Imported %d circuits across %d providers", len(rows), len(providerBySlug))
		return nil
	})
}
