package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// cleaning pipeline.
type Metrics struct {
	RecordsExtracted     prometheus.Counter
	RecordsDropped       prometheus.Counter
	WinterFiltered       prometheus.Counter
	AttributeDivergences prometheus.Counter
	SummariesPublished   prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Per-run output sizes.
	SitesIdentified prometheus.Gauge
	YearlyRows      prometheus.Gauge
	WatershedRows   prometheus.Gauge

	RunDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bcg_pipeline",
			Name:      "records_extracted_total",
			Help:      "Total sample records read from the source table.",
		}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bcg_pipeline",
			Name:      "records_dropped_total",
			Help:      "Records rejected for missing coordinates or unparsable dates.",
		}),
		WinterFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bcg_pipeline",
			Name:      "winter_filtered_total",
			Help:      "Records excluded as out-of-season (Dec, Jan, Feb).",
		}),
		AttributeDivergences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bcg_pipeline",
			Name:      "attribute_divergences_total",
			Help:      "Static site attributes that varied within a site identifier.",
		}),
		SummariesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bcg_pipeline",
			Name:      "summaries_published_total",
			Help:      "Watershed summaries published to the export sink.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bcg_pipeline",
			Name:      "pipeline_running",
			Help:      "1 while a batch run is active, 0 otherwise.",
		}),
		SitesIdentified: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bcg_pipeline",
			Name:      "sites_identified",
			Help:      "Distinct site identifiers assigned in the last run.",
		}),
		YearlyRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bcg_pipeline",
			Name:      "yearly_rows",
			Help:      "Site-year aggregate rows produced by the last run.",
		}),
		WatershedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bcg_pipeline",
			Name:      "watershed_rows",
			Help:      "Watershed summary rows produced by the last run.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bcg_pipeline",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-clean-aggregate-load run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.RecordsExtracted,
		m.RecordsDropped,
		m.WinterFiltered,
		m.AttributeDivergences,
		m.SummariesPublished,
		m.PipelineRunning,
		m.SitesIdentified,
		m.YearlyRows,
		m.WatershedRows,
		m.RunDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsExtracted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bcg_pipeline", Name: "records_extracted_total"}),
		RecordsDropped:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bcg_pipeline", Name: "records_dropped_total"}),
		WinterFiltered:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bcg_pipeline", Name: "winter_filtered_total"}),
		AttributeDivergences: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bcg_pipeline", Name: "attribute_divergences_total"}),
		SummariesPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bcg_pipeline", Name: "summaries_published_total"}),
		PipelineRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bcg_pipeline", Name: "pipeline_running"}),
		SitesIdentified:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bcg_pipeline", Name: "sites_identified"}),
		YearlyRows:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bcg_pipeline", Name: "yearly_rows"}),
		WatershedRows:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bcg_pipeline", Name: "watershed_rows"}),
		RunDuration:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bcg_pipeline", Name: "run_duration_seconds"}),
	}
}
