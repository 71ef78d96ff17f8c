package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
)

var (
	cleanedHeader = []string{
		"record_id", "site_id", "site_agency_id", "lat", "lon", "agency", "date",
		"year", "month", "day", "bcg", "huc8", "huc12", "comid", "stream_order", "drain_sqkm",
		"site_n", "site_yr_n", "site_mo_yr_n", "site_date_n", "agency_n", "bcg_annual_range",
		"multi_sample_yr", "multi_sample_mo_yr", "multi_sample_date",
		"same_agency_yr", "same_agency_mo_yr", "same_agency_date",
		"cleaned_at",
	}

	yearlyHeader = []string{
		"site_id", "year", "bcg_mean", "n", "bcg_min", "bcg_max", "bcg_range",
		"lat", "lon", "agency", "huc8", "huc12", "comid", "stream_order", "drain_sqkm",
	}

	watershedHeader = []string{"huc8", "name", "bcg_mean", "site_n", "grade"}
)

// Loader writes the three output tables as CSV files.
// It implements pipeline.Loader.
type Loader struct {
	cleanedPath   string
	yearlyPath    string
	watershedPath string
	logger        *slog.Logger
}

// NewLoader creates a Loader writing to the three given paths.
func NewLoader(cleanedPath, yearlyPath, watershedPath string, logger *slog.Logger) *Loader {
	return &Loader{
		cleanedPath:   cleanedPath,
		yearlyPath:    yearlyPath,
		watershedPath: watershedPath,
		logger:        logger,
	}
}

// LoadCleaned writes the cleaned, flagged sample table.
func (l *Loader) LoadCleaned(ctx context.Context, records []domain.SiteSample) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.RecordID,
			strconv.Itoa(r.SiteID),
			strconv.Itoa(r.SiteAgencyID),
			formatFloat(r.Lat),
			formatFloat(r.Lon),
			r.Agency,
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Day),
			formatFloat(r.BCG),
			r.HUC8,
			r.HUC12,
			r.ReachID,
			strconv.Itoa(r.StreamOrder),
			formatFloat(r.DrainSqKm),
			strconv.Itoa(r.Stats.SiteCount),
			strconv.Itoa(r.Stats.YearCount),
			strconv.Itoa(r.Stats.MonthCount),
			strconv.Itoa(r.Stats.DateCount),
			strconv.Itoa(r.Stats.AgencyCount),
			formatFloat(r.Stats.AnnualRange),
			formatBool(r.Flags.MultiYear),
			formatBool(r.Flags.MultiMonth),
			formatBool(r.Flags.MultiDate),
			formatBool(r.Flags.SameAgencyYear),
			formatBool(r.Flags.SameAgencyMonth),
			formatBool(r.Flags.SameAgencyDate),
			r.CleanedAt.UTC().Format(time.RFC3339),
		})
	}
	return l.write(ctx, l.cleanedPath, cleanedHeader, rows)
}

// LoadYearly writes the per-site-year aggregate table.
func (l *Loader) LoadYearly(ctx context.Context, aggregates []domain.YearlyAggregate) error {
	rows := make([][]string, 0, len(aggregates))
	for _, a := range aggregates {
		rows = append(rows, []string{
			strconv.Itoa(a.SiteID),
			strconv.Itoa(a.Year),
			formatFloat(a.MeanBCG),
			strconv.Itoa(a.SampleCount),
			formatFloat(a.MinBCG),
			formatFloat(a.MaxBCG),
			formatFloat(a.Range),
			formatFloat(a.Lat),
			formatFloat(a.Lon),
			a.Agency,
			a.HUC8,
			a.HUC12,
			a.ReachID,
			strconv.Itoa(a.StreamOrder),
			formatFloat(a.DrainSqKm),
		})
	}
	return l.write(ctx, l.yearlyPath, yearlyHeader, rows)
}

// LoadWatershed writes the per-HUC8 summary table.
func (l *Loader) LoadWatershed(ctx context.Context, summaries []domain.WatershedSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.HUC8,
			s.Name,
			formatFloat(s.MeanBCG),
			strconv.Itoa(s.SiteCount),
			strconv.Itoa(s.Grade),
		})
	}
	return l.write(ctx, l.watershedPath, watershedHeader, rows)
}

// write creates the parent directory if needed and writes header + rows
// atomically enough for a batch job: a temp file renamed into place.
func (l *Loader) write(ctx context.Context, path string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	l.logger.Info("table written", "path", path, "rows", len(rows))
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
