package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/CircuitOps/CM-Backend/internal/billing"
	"github.com/CircuitOps/CM-Backend/internal/carrier"
	"github.com/CircuitOps/CM-Backend/internal/circuits"
	"github.com/CircuitOps/CM-Backend/internal/config"
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/paths"
	"github.com/CircuitOps/CM-Backend/internal/tickets"
	"github.com/joho/godotenv"
)

func main() {
	configID := flag.String("config", "", "Specific API config ID to sync (default: all enabled)")
	providerType := flag.String("provider-type", "", "Only sync configs of this provider type")
	testOnly := flag.Bool("test", false, "Test connection only, do not sync")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	cfg := config.Load()
	db.Connect(cfg.DatabaseURL)

	circuits.Init()
	billing.Init()
	tickets.Init()
	paths.Init(cfg)
	carrier.Init()

	query := db.DB.Preload("Provider").Where("sync_enabled = ?", true)
	if *configID != "" {
		query = query.Where("id = ?", *configID)
	}
	if *providerType != "" {
		query = query.Where("provider_type = ?", *providerType)
	}

	var configs []carrier.APIConfig
	if err := query.Find(&configs).Error; err != nil {
		log.Fatalf("Failed to load API configs: %v", err)
	}
	if len(configs) == 0 {
		log.Println("No enabled provider configurations found")
		return
	}

	syncer := carrier.NewSyncer()
	ctx := context.Background()
	anySucceeded := false

	for _, c := range configs {
		fmt.Printf("\nProcessing provider: %s (%s)\n", c.Provider.Name, c.ProviderType)

		if *testOnly {
			result := syncer.TestConnection(ctx, c)
			if result.Success {
				fmt.Printf("Connection successful (response time: %.2fs)\n", result.ResponseTime)
				anySucceeded = true
			} else {
				fmt.Printf("Connection failed: %s\n", result.Message)
			}
			continue
		}

		fmt.Println("Starting synchronization...")
		stats := syncer.SyncConfig(ctx, c)
		fmt.Printf("Sync complete: %d/%d circuits synced\n", stats.Succeeded, stats.Total)
		if stats.Failed > 0 {
			fmt.Printf("Failed: %d\n", stats.Failed)
		}
		if len(stats.Errors) > 0 {
			fmt.Println("Errors:")
			for _, e := range stats.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
		if stats.Succeeded > 0 || (stats.Total == 0 && len(stats.Errors) == 0) {
			anySucceeded = true
		}
	}

	if !anySucceeded {
		os.Exit(1)
	}
	fmt.Println("\nDone!")
}
