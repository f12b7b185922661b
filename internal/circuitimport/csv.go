package circuitimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// Row is one circuit from an inventory export.
type Row struct {
	Provider    string
	CID         string
	Status      string
	Description string
	InstallDate *time.Time
}

var validStatuses = map[string]bool{
	"active":         true,
	"provisioning":   true,
	"decommissioned": true,
	"maintenance":    true,
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a provider name into its URL slug.
func Slugify(name string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(s, "-")
}

func ParseCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, k := range []string{"provider", "cid", "status"} {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	seen := map[string]bool{}
	var out []Row

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		row := Row{
			Provider:    get("provider"),
			CID:         get("cid"),
			Status:      get("status"),
			Description: get("description"),
		}

		if row.Provider == "" || row.CID == "" {
			return nil, fmt.Errorf("row %d: provider and cid are required", rowIdx+1)
		}
		if row.Status == "" {
			row.Status = "active"
		}
		if !validStatuses[row.Status] {
			return nil, fmt.Errorf("row %d: invalid status %q", rowIdx+1, row.Status)
		}

		key := Slugify(row.Provider) + "/" + row.CID
		if seen[key] {
			return nil, fmt.Errorf("row %d: duplicate circuit %s", rowIdx+1, key)
		}
		seen[key] = true

		if raw := get("install_date"); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad install_date %q (want YYYY-MM-DD)", rowIdx+1, raw)
			}
			row.InstallDate = &d
		}

		out = append(out, row)
	}

	return out, nil
}
