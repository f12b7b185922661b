package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// Lists contracts coming up for expiry or renewal notice within a window,
// straight from SQL so it can run against a live database without the server.
func main() {
	days := flag.Int("days", 90, "Report contracts expiring within this many days")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT ct.contract_number,
		       c.cid,
		       p.name,
		       ct.end_date,
		       ct.auto_renew,
		       ct.renewal_notice_days,
		       ct.early_termination_fee
		FROM billing.circuit_contracts ct
		JOIN inventory.circuits c ON c.id = ct.circuit_id
		JOIN inventory.providers p ON p.id = c.provider_id
		WHERE ct.end_date IS NOT NULL
		  AND ct.end_date BETWEEN NOW() AND NOW() + ($1 || ' days')::interval
		ORDER BY ct.end_date`, *days)
	if err != nil {
		log.Fatalf("Query error: %v", err)
	}
	defer rows.Close()

	fmt.Printf("Contracts expiring within %d days:\n\n", *days)
	count := 0

	for rows.Next() {
		var (
			contractNumber string
			cid            string
			providerName   string
			endDate        time.Time
			autoRenew      bool
			noticeDays     sql.NullInt64
			etf            sql.NullFloat64
		)
		if err := rows.Scan(&contractNumber, &cid, &providerName, &endDate, &autoRenew, &noticeDays, &etf); err != nil {
			log.Fatalf("Scan error: %v", err)
		}
		count++

		daysLeft := int(time.Until(endDate).Hours() / 24)
		fmt.Printf("%s  %s (%s)  ends %s  (%d days)\n",
			contractNumber, cid, providerName, endDate.Format("2006-01-02"), daysLeft)

		if autoRenew && noticeDays.Valid {
			noticeBy := endDate.AddDate(0, 0, -int(noticeDays.Int64))
			fmt.Printf("    auto-renews; notice due by %s\n", noticeBy.Format("2006-01-02"))
		}
		if etf.Valid {
			fmt.Printf("    early termination fee: %.2f\n", etf.Float64)
		}
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Rows error: %v", err)
	}

	if count == 0 {
		fmt.Println("No contracts in the window.")
	} else {
		fmt.Printf("\nTotal: %d\n", count)
	}
}
