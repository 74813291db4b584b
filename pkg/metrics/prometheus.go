// Package metrics provides Prometheus metrics for the crosscheck
// reconciliation run.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for a reconciliation run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline progress
	profilesProcessed prometheus.Counter
	eventsChecked     prometheus.Counter
	eventOutcomes     *prometheus.CounterVec

	// Input quality
	resultsLoaded    *prometheus.CounterVec
	duplicateResults prometheus.Counter

	// Index state
	indexSkaters prometheus.Gauge
	indexResults prometheus.Gauge

	// Throughput
	workerCount      prometheus.Gauge
	profileLatency   prometheus.Histogram
	indexBuildTimeMS prometheus.Gauge

	// Failures outside the classification taxonomy
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "crosscheck",
		subsystem:        "reconcile",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.profilesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profiles_processed_total",
		Help:      "Total number of profiles classified during the run",
	})

	m.eventsChecked = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_checked_total",
		Help:      "Total number of profile events checked against the result index",
	})

	m.eventOutcomes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_outcomes_total",
		Help:      "Event classifications by outcome (matched, mismatched, not_found)",
	}, []string{"outcome"})

	m.resultsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_loaded_total",
		Help:      "Result records loaded, labeled by source dataset",
	}, []string{"source"})

	m.duplicateResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_results_total",
		Help:      "Exact duplicate result records observed across datasets",
	})

	m.indexSkaters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_skaters",
		Help:      "Distinct normalized skater keys in the result index",
	})

	m.indexResults = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_results",
		Help:      "Total result records held by the index",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of reconciliation workers for this run",
	})

	m.profileLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profile_latency_milliseconds",
		Help:      "Histogram of per-profile classification latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.indexBuildTimeMS = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_build_milliseconds",
		Help:      "Wall time spent building the result index",
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors outside the classification taxonomy, by component and kind",
	}, []string{"component", "kind"})
}

// Handler exposes the custom registry for an optional /metrics listener.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level recording helpers on the global manager.

// RecordProfileProcessed increments the processed-profile counter.
func RecordProfileProcessed() {
	globalManager.profilesProcessed.Inc()
}

// RecordEventOutcome counts one checked event under its outcome.
func RecordEventOutcome(outcome string) {
	globalManager.eventsChecked.Inc()
	globalManager.eventOutcomes.WithLabelValues(outcome).Inc()
}

// RecordResultsLoaded counts result records loaded from a source dataset.
func RecordResultsLoaded(source string, count int) {
	globalManager.resultsLoaded.WithLabelValues(source).Add(float64(count))
}

// RecordDuplicateResult counts one exact duplicate result record.
func RecordDuplicateResult() {
	globalManager.duplicateResults.Inc()
}

// UpdateIndexSize records the size of the built result index.
func UpdateIndexSize(skaters, results int) {
	globalManager.indexSkaters.Set(float64(skaters))
	globalManager.indexResults.Set(float64(results))
}

// UpdateWorkerCount records the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordProfileLatency observes one per-profile classification latency.
func RecordProfileLatency(ms float64) {
	globalManager.profileLatency.Observe(ms)
}

// RecordIndexBuildTime records the index build wall time.
func RecordIndexBuildTime(ms float64) {
	globalManager.indexBuildTimeMS.Set(ms)
}

// RecordErrorByComponent counts an error by component and kind.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}
