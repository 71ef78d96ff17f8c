package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
	"github.com/couchcryptid/bcg-survey-pipeline/internal/observability"
)

// Extractor reads the complete raw sample table from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawSampleRecord, error)
}

// Loader writes the three output tables to the destination.
type Loader interface {
	LoadCleaned(ctx context.Context, records []domain.SiteSample) error
	LoadYearly(ctx context.Context, rows []domain.YearlyAggregate) error
	LoadWatershed(ctx context.Context, summaries []domain.WatershedSummary) error
}

// Publisher exports watershed summaries to a streaming sink. Optional.
type Publisher interface {
	PublishWatershed(ctx context.Context, summaries []domain.WatershedSummary) error
}

// RunResult holds the per-run diagnostic counts surfaced to logs and the
// validate tool.
type RunResult struct {
	Extracted     int
	Dropped       int
	Cleaned       int
	Sites         int
	WinterRemoved int
	YearlyRows    int
	WatershedRows int
	Divergences   int
}

// Pipeline orchestrates one extract-clean-aggregate-load batch run.
type Pipeline struct {
	extractor Extractor
	cleaner   *Cleaner
	loader    Loader
	publisher Publisher // nil when export is disabled
	hucNames  map[string]string
	logger    *slog.Logger
	metrics   *observability.Metrics

	cutoffYear int
	ready      atomic.Bool
}

// New creates a Pipeline. publisher may be nil; hucNames may be empty.
func New(e Extractor, l Loader, p Publisher, hucNames map[string]string, cutoffYear int, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:  e,
		cleaner:    NewCleaner(logger),
		loader:     l,
		publisher:  p,
		hucNames:   hucNames,
		logger:     logger,
		metrics:    metrics,
		cutoffYear: cutoffYear,
	}
}

// CheckReadiness returns nil once a batch run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Ready reports whether a batch run has completed successfully.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes one complete batch: extract the raw table, clean and flag it,
// load the cleaned table, season-filter, aggregate per site-year and per
// watershed, and load (and optionally publish) the results. Each stage
// consumes the complete output of the previous one.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	var result RunResult

	raws, err := p.extractor.Extract(ctx)
	if err != nil {
		return result, fmt.Errorf("extract: %w", err)
	}
	result.Extracted = len(raws)
	p.metrics.RecordsExtracted.Add(float64(len(raws)))
	p.logger.Info("extracted sample table", "records", len(raws))

	cleaned, dropped, err := p.cleaner.Clean(raws)
	if err != nil {
		return result, err
	}
	result.Dropped = dropped
	result.Cleaned = len(cleaned)
	result.Sites = countSites(cleaned)
	p.metrics.RecordsDropped.Add(float64(dropped))
	p.metrics.SitesIdentified.Set(float64(result.Sites))
	if dropped > 0 {
		p.logger.Warn("dropped invalid records", "count", dropped)
	}

	if err := p.loader.LoadCleaned(ctx, cleaned); err != nil {
		return result, fmt.Errorf("load cleaned table: %w", err)
	}

	filtered, removed := domain.FilterSeason(cleaned)
	result.WinterRemoved = removed
	p.metrics.WinterFiltered.Add(float64(removed))
	p.logger.Info("season filter applied", "removed", removed, "kept", len(filtered))

	yearly, divergences := domain.AggregateYearly(filtered)
	result.YearlyRows = len(yearly)
	result.Divergences = len(divergences)
	p.metrics.YearlyRows.Set(float64(len(yearly)))
	p.metrics.AttributeDivergences.Add(float64(len(divergences)))
	for _, d := range divergences {
		p.logger.Warn("static site attribute diverges", "site_id", d.SiteID, "field", d.Field, "first", d.First, "other", d.Other)
	}

	if err := p.loader.LoadYearly(ctx, yearly); err != nil {
		return result, fmt.Errorf("load yearly table: %w", err)
	}

	recent := domain.SelectMostRecent(yearly)
	summaries := domain.AggregateWatershed(recent, p.cutoffYear)
	summaries = domain.LabelWatersheds(summaries, p.hucNames)
	result.WatershedRows = len(summaries)
	p.metrics.WatershedRows.Set(float64(len(summaries)))

	if err := p.loader.LoadWatershed(ctx, summaries); err != nil {
		return result, fmt.Errorf("load watershed table: %w", err)
	}

	if p.publisher != nil {
		if err := p.publisher.PublishWatershed(ctx, summaries); err != nil {
			// Export is best-effort: the file artifacts are already written.
			p.logger.Error("publish watershed summaries failed", "error", err)
		} else {
			p.metrics.SummariesPublished.Add(float64(len(summaries)))
		}
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("run complete",
		"extracted", result.Extracted,
		"dropped", result.Dropped,
		"sites", result.Sites,
		"winter_removed", result.WinterRemoved,
		"yearly_rows", result.YearlyRows,
		"watershed_rows", result.WatershedRows,
		"divergences", result.Divergences,
		"duration", time.Since(start),
	)

	return result, nil
}

func countSites(records []domain.SiteSample) int {
	sites := make(map[int]struct{}, len(records))
	for _, r := range records {
		sites[r.SiteID] = struct{}{}
	}
	return len(sites)
}
