// Command genmock writes a mock merged-sample CSV that exercises every
// cleaning path: multi-agency sites, repeat visits within a year/month/date,
// winter records, pre-cutoff history, and rows with missing coordinates. It
// can also emit the expected yearly aggregates as JSON, computed with the
// actual domain package so fixtures track real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv-out data/mock/samples_merged.csv \
//	  -yearly-out data/mock/site_year_expected.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
	"github.com/jonboulle/clockwork"
)

var header = []string{"Lat", "Lon", "Agency", "Date", "BCG", "HUC8", "HUC12", "COMID", "StreamOrder", "DrainSqKm"}

// mockRows covers the dedup/flag matrix. Site A (41.52, -72.75) is visited
// twice in summer 2019 by one agency; site B (41.80, -72.30) is sampled the
// same day by two agencies; site C (42.05, -71.88) has a winter visit and a
// pre-cutoff history; the last row has no coordinates and must be dropped.
var mockRows = [][]string{
	{"41.52", "-72.75", "CTDEEP", "2019-06-10", "2.0", "01080205", "010802050304", "6076231", "3", "42.7"},
	{"41.52", "-72.75", "CTDEEP", "2019-07-20", "4.0", "01080205", "010802050304", "6076231", "3", "42.7"},
	{"41.80", "-72.30", "CTDEEP", "2018-08-05", "3.0", "01080205", "010802050201", "6076445", "2", "18.1"},
	{"41.80", "-72.30", "EPA", "2018-08-05", "3.5", "01080205", "010802050201", "6076445", "2", "18.1"},
	{"42.05", "-71.88", "MADEP", "2019-01-15", "5.0", "01080206", "010802060102", "6081120", "4", "96.4"},
	{"42.05", "-71.88", "MADEP", "2019-09-01", "5.0", "01080206", "010802060102", "6081120", "4", "96.4"},
	{"42.05", "-71.88", "MADEP", "1998-07-12", "4.5", "01080206", "010802060102", "6081120", "4", "96.4"},
	{"NA", "-72.00", "NHDES", "2019-06-01", "3.0", "01080207", "", "", "", ""},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the mock merged sample CSV")
	yearlyOut := flag.String("yearly-out", "", "optional output path for expected yearly aggregates (JSON)")
	flag.Parse()

	if *csvOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv-out")
	}

	if err := writeCSV(*csvOut); err != nil {
		return err
	}
	fmt.Printf("wrote %d mock rows to %s\n", len(mockRows), *csvOut)

	if *yearlyOut == "" {
		return nil
	}

	// Fixed clock for reproducible CleanedAt stamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	yearly, err := expectedYearly()
	if err != nil {
		return err
	}
	if err := writeJSON(*yearlyOut, yearly); err != nil {
		return err
	}
	fmt.Printf("wrote %d expected yearly rows to %s\n", len(yearly), *yearlyOut)
	return nil
}

func writeCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(mockRows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// expectedYearly runs the mock rows through the real cleaning chain.
func expectedYearly() ([]domain.YearlyAggregate, error) {
	var samples []domain.Sample
	for _, row := range mockRows {
		s, err := domain.ParseSampleRecord(domain.RawSampleRecord{
			Lat: row[0], Lon: row[1], Agency: row[2], Date: row[3], BCG: row[4],
			HUC8: row[5], HUC12: row[6], ReachID: row[7], StreamOrder: row[8], DrainSqKm: row[9],
		})
		if err != nil {
			continue // the deliberate bad-coordinate row
		}
		samples = append(samples, s)
	}

	identified, err := domain.AssignIdentifiers(samples)
	if err != nil {
		return nil, err
	}
	flagged := domain.ComputeGroupStats(identified)
	filtered, _ := domain.FilterSeason(flagged)
	yearly, _ := domain.AggregateYearly(filtered)
	return yearly, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
