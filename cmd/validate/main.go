// Command validate performs end-to-end integrity checks over the pipeline's
// output artifacts: the cleaned sample table, the site-year aggregate table,
// and the watershed summary table. It verifies the flag implication
// invariants, the one-row-per-site-year identity, winter exclusion, and
// watershed grading.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -cleaned out/samples_cleaned.csv \
//	  -yearly out/site_year_aggregates.csv \
//	  -watershed out/watershed_summaries.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// table is a header-indexed CSV.
type table struct {
	idx  map[string]int
	rows [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) getInt(row []string, col string) int {
	v, _ := strconv.Atoi(t.get(row, col))
	return v
}

func (t *table) getFloat(row []string, col string) float64 {
	v, _ := strconv.ParseFloat(t.get(row, col), 64)
	return v
}

func main() {
	cleanedPath := flag.String("cleaned", "", "path to the cleaned sample CSV")
	yearlyPath := flag.String("yearly", "", "path to the site-year aggregate CSV")
	watershedPath := flag.String("watershed", "", "path to the watershed summary CSV")
	flag.Parse()

	if *cleanedPath == "" || *yearlyPath == "" || *watershedPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*cleanedPath, *yearlyPath, *watershedPath); code != 0 {
		os.Exit(code)
	}
}

func run(cleanedPath, yearlyPath, watershedPath string) int {
	cleaned, err := readTable(cleanedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read cleaned table: %v\n", err)
		return 1
	}
	yearly, err := readTable(yearlyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read yearly table: %v\n", err)
		return 1
	}
	watershed, err := readTable(watershedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read watershed table: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateCleaned(cleaned),
		validateYearly(yearly),
		validateWatershed(watershed),
		validateCrossTable(cleaned, yearly),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("\nall %d phases passed\n", len(phases))
	return 0
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	idx := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		idx[h] = i
	}
	return &table{idx: idx, rows: all[1:]}, nil
}

// validateCleaned checks per-record count and flag invariants.
func validateCleaned(t *table) *phase {
	p := &phase{name: "cleaned table invariants"}

	for i, row := range t.rows {
		for _, col := range []string{"site_n", "site_yr_n", "site_mo_yr_n", "site_date_n", "agency_n"} {
			if t.getInt(row, col) < 1 {
				p.errorf("row %d: %s = %d, want >= 1", i+2, col, t.getInt(row, col))
			}
		}

		pairs := [][2]string{
			{"same_agency_yr", "multi_sample_yr"},
			{"same_agency_mo_yr", "multi_sample_mo_yr"},
			{"same_agency_date", "multi_sample_date"},
		}
		for _, pair := range pairs {
			if t.get(row, pair[0]) == "1" && t.get(row, pair[1]) != "1" {
				p.errorf("row %d: %s set without %s", i+2, pair[0], pair[1])
			}
		}

		if t.getInt(row, "site_yr_n") == 1 {
			if t.get(row, "multi_sample_yr") == "1" {
				p.errorf("row %d: multi_sample_yr set for a singleton year group", i+2)
			}
			if t.getFloat(row, "bcg_annual_range") != 0 {
				p.errorf("row %d: nonzero annual range for a singleton year group", i+2)
			}
		}
	}
	return p
}

// validateYearly checks the one-row-per-site-year identity and range math.
func validateYearly(t *table) *phase {
	p := &phase{name: "yearly table invariants"}

	seen := make(map[string]bool)
	for i, row := range t.rows {
		key := t.get(row, "site_id") + "|" + t.get(row, "year")
		if seen[key] {
			p.errorf("row %d: duplicate site-year %s", i+2, key)
		}
		seen[key] = true

		if t.getInt(row, "n") < 1 {
			p.errorf("row %d: n = %d, want >= 1", i+2, t.getInt(row, "n"))
		}

		min, max := t.getFloat(row, "bcg_min"), t.getFloat(row, "bcg_max")
		if r := t.getFloat(row, "bcg_range"); math.Abs(r-(max-min)) > 1e-9 {
			p.errorf("row %d: bcg_range %g != max-min %g", i+2, r, max-min)
		}
		if mean := t.getFloat(row, "bcg_mean"); mean < min-1e-9 || mean > max+1e-9 {
			p.errorf("row %d: bcg_mean %g outside [min, max]", i+2, mean)
		}
	}
	return p
}

// validateWatershed checks grading and per-unit counts.
func validateWatershed(t *table) *phase {
	p := &phase{name: "watershed table invariants"}

	seen := make(map[string]bool)
	for i, row := range t.rows {
		huc := t.get(row, "huc8")
		if seen[huc] {
			p.errorf("row %d: duplicate huc8 %s", i+2, huc)
		}
		seen[huc] = true

		if t.getInt(row, "site_n") < 1 {
			p.errorf("row %d: site_n < 1", i+2)
		}

		mean := t.getFloat(row, "bcg_mean")
		if want := int(math.Round(mean)); t.getInt(row, "grade") != want {
			p.errorf("row %d: grade %d != round(%g) = %d", i+2, t.getInt(row, "grade"), mean, want)
		}
	}
	return p
}

// validateCrossTable checks identities that span the cleaned and yearly tables.
func validateCrossTable(cleaned, yearly *table) *phase {
	p := &phase{name: "cross-table identities"}

	if len(yearly.rows) > len(cleaned.rows) {
		p.errorf("yearly rows (%d) exceed cleaned rows (%d)", len(yearly.rows), len(cleaned.rows))
	}

	// Every yearly (site, year) must have a non-winter cleaned record.
	nonWinter := make(map[string]bool)
	for _, row := range cleaned.rows {
		month := cleaned.getInt(row, "month")
		if month == 1 || month == 2 || month == 12 {
			continue
		}
		nonWinter[cleaned.get(row, "site_id")+"|"+cleaned.get(row, "year")] = true
	}
	for i, row := range yearly.rows {
		key := yearly.get(row, "site_id") + "|" + yearly.get(row, "year")
		if !nonWinter[key] {
			p.errorf("row %d: yearly site-year %s has no non-winter cleaned record", i+2, key)
		}
	}
	return p
}
