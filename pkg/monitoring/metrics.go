// Package monitoring exposes the citation engine's runtime behavior as
// Prometheus metrics: documents processed, citations extracted per
// variant, filter-stage drops, and resolver hit rate (SPEC_FULL.md §A).
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector registered by lexcite.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DocumentsProcessed  *prometheus.CounterVec
	CitationsExtracted  *prometheus.CounterVec
	ExtractionDuration  prometheus.Histogram
	FilterDropped       *prometheus.CounterVec

	ResolverPairsTotal  prometheus.Counter
	ResolverResources   prometheus.Histogram

	BatchDocumentsTotal *prometheus.CounterVec
	BatchSize           prometheus.Histogram

	LedgerSeedSize      prometheus.Gauge
	LedgerPruneTotal    prometheus.Counter
}

// New builds and registers all collectors against a fresh registry, so
// multiple Metrics instances (one per test, say) never collide on name.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexcite_http_requests_total",
				Help: "Total number of HTTP requests, by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lexcite_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DocumentsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexcite_documents_processed_total",
				Help: "Total number of documents run through GetCitations, by outcome",
			},
			[]string{"status"},
		),
		CitationsExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexcite_citations_extracted_total",
				Help: "Total number of citations extracted, by variant",
			},
			[]string{"variant"},
		),
		ExtractionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lexcite_extraction_duration_seconds",
				Help:    "GetCitations wall-clock duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		FilterDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexcite_filter_dropped_total",
				Help: "Total number of candidate citations dropped by the filter stage, by reason",
			},
			[]string{"reason"},
		),

		ResolverPairsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lexcite_resolver_pairs_total",
				Help: "Total number of citation/resource pairs produced by ResolveCitations",
			},
		),
		ResolverResources: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lexcite_resolver_resources_per_call",
				Help:    "Distinct resources produced per ResolveCitations call",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),

		BatchDocumentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexcite_batch_documents_total",
				Help: "Total number of documents processed through the batch pipeline, by outcome",
			},
			[]string{"status"},
		),
		BatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lexcite_batch_size",
				Help:    "Number of documents per batch extraction request",
				Buckets: []float64{1, 5, 10, 25, 50, 100},
			},
		),

		LedgerSeedSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "lexcite_ledger_seed_size",
				Help: "Number of resources returned by the most recent ledger seed",
			},
		),
		LedgerPruneTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lexcite_ledger_prune_total",
				Help: "Total number of ledger prune runs completed",
			},
		),
	}
}

// RecordHTTPRequest records one HTTP request/response cycle.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordExtraction records one GetCitations call and the variant
// distribution of what it found.
func (m *Metrics) RecordExtraction(duration time.Duration, variantCounts map[string]int) {
	m.DocumentsProcessed.WithLabelValues("ok").Inc()
	m.ExtractionDuration.Observe(duration.Seconds())
	for variant, count := range variantCounts {
		m.CitationsExtracted.WithLabelValues(variant).Add(float64(count))
	}
}

// RecordExtractionError records a document that failed processing.
func (m *Metrics) RecordExtractionError() {
	m.DocumentsProcessed.WithLabelValues("error").Inc()
}

// RecordFilterDrop records one citation dropped during the filter stage.
func (m *Metrics) RecordFilterDrop(reason string) {
	m.FilterDropped.WithLabelValues(reason).Inc()
}

// RecordResolve records one ResolveCitations call.
func (m *Metrics) RecordResolve(pairCount, resourceCount int) {
	m.ResolverPairsTotal.Add(float64(pairCount))
	m.ResolverResources.Observe(float64(resourceCount))
}

// RecordBatch records one batch extraction request.
func (m *Metrics) RecordBatch(size, succeeded, failed int) {
	m.BatchSize.Observe(float64(size))
	m.BatchDocumentsTotal.WithLabelValues("ok").Add(float64(succeeded))
	m.BatchDocumentsTotal.WithLabelValues("error").Add(float64(failed))
}

// RecordLedgerSeed records the size of the most recent ledger seed.
func (m *Metrics) RecordLedgerSeed(size int) {
	m.LedgerSeedSize.Set(float64(size))
}

// RecordLedgerPrune records one completed prune run.
func (m *Metrics) RecordLedgerPrune() {
	m.LedgerPruneTotal.Inc()
}

// Handler returns the Prometheus scrape endpoint handler for this
// instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
