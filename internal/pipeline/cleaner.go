package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
)

// Cleaner runs the per-record stages of the pipeline: parsing, identifier
// assignment, and grouping/flag derivation.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a Cleaner.
func NewCleaner(logger *slog.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses the raw rows, skipping (and counting) records with missing
// coordinates or unparsable dates, then assigns site identifiers and computes
// grouping statistics and flags over the surviving records.
func (c *Cleaner) Clean(raws []domain.RawSampleRecord) ([]domain.SiteSample, int, error) {
	samples := make([]domain.Sample, 0, len(raws))
	dropped := 0

	for i, raw := range raws {
		s, err := domain.ParseSampleRecord(raw)
		if err != nil {
			if !errors.Is(err, domain.ErrMissingCoordinates) && !errors.Is(err, domain.ErrUnparsableDate) {
				return nil, 0, fmt.Errorf("clean: row %d: %w", i, err)
			}
			c.logger.Warn("dropping sample record", "row", i, "error", err)
			dropped++
			continue
		}
		samples = append(samples, s)
	}

	identified, err := domain.AssignIdentifiers(samples)
	if err != nil {
		return nil, 0, fmt.Errorf("clean: %w", err)
	}

	return domain.ComputeGroupStats(identified), dropped, nil
}
