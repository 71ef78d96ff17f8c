// Package csvfile implements the file-based extractor and loader for the
// pipeline: the merged sample table in, the three cleaned/aggregated tables
// out, plus the optional HUC8 region-name reference.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
)

// inputColumns maps the merged table's header names to record fields.
// Matching is case-insensitive; column order does not matter.
var inputColumns = []string{"Lat", "Lon", "Agency", "Date", "BCG", "HUC8", "HUC12", "COMID", "StreamOrder", "DrainSqKm"}

// Extractor reads the merged multi-agency sample CSV.
// It implements pipeline.Extractor.
type Extractor struct {
	path   string
	logger *slog.Logger
}

// NewExtractor creates an Extractor for the given CSV path.
func NewExtractor(path string, logger *slog.Logger) *Extractor {
	return &Extractor{path: path, logger: logger}
}

// Extract reads the whole table into memory, preserving row order. The
// header row names the columns; rows shorter than the header are rejected.
func (e *Extractor) Extract(ctx context.Context) ([]domain.RawSampleRecord, error) {
	f, err := os.Open(e.path)
	if err != nil {
		return nil, fmt.Errorf("open sample table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read sample table header: %w", err)
	}
	idx, err := headerIndex(header, inputColumns, "Lat", "Lon", "Date", "BCG", "HUC8")
	if err != nil {
		return nil, fmt.Errorf("sample table %s: %w", e.path, err)
	}

	var out []domain.RawSampleRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sample table row %d: %w", len(out)+2, err)
		}

		out = append(out, domain.RawSampleRecord{
			Lat:         field(row, idx, "Lat"),
			Lon:         field(row, idx, "Lon"),
			Agency:      field(row, idx, "Agency"),
			Date:        field(row, idx, "Date"),
			BCG:         field(row, idx, "BCG"),
			HUC8:        field(row, idx, "HUC8"),
			HUC12:       field(row, idx, "HUC12"),
			ReachID:     field(row, idx, "COMID"),
			StreamOrder: field(row, idx, "StreamOrder"),
			DrainSqKm:   field(row, idx, "DrainSqKm"),
		})
	}

	e.logger.Debug("sample table read", "path", e.path, "rows", len(out))
	return out, nil
}

// headerIndex maps wanted column names to their positions in the header,
// case-insensitively. The required names must all be present.
func headerIndex(header, wanted []string, required ...string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	idx := make(map[string]int, len(wanted))
	for _, w := range wanted {
		if i, ok := pos[strings.ToLower(w)]; ok {
			idx[w] = i
		}
	}
	for _, req := range required {
		if _, ok := idx[req]; !ok {
			return nil, fmt.Errorf("missing required column %q", req)
		}
	}
	return idx, nil
}

// field returns the named column's value, or "" when the column is absent
// or the row is short.
func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
