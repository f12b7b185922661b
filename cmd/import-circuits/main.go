package main

import (
	"flag"
	"log"
	"os"

	"github.com/CircuitOps/CM-Backend/internal/circuitimport"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "path to circuit CSV export")
		dbURL   = flag.String("db", "", "DATABASE_URL")
	)
	flag.Parse()

	if *csvPath == "" || *dbURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := circuitimport.Config{
		CSVPath:     *csvPath,
		DatabaseURL: *dbURL,
	}

	if err := circuitimport.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
