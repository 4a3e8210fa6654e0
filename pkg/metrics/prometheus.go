// Package metrics provides Prometheus metrics for the YouCoder tagging service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the YouCoder service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Tagging metrics - the core business activity
	actionsStarted prometheus.Counter
	actionsStopped prometheus.Counter
	actionsDeleted prometheus.Counter
	labelsAttached prometheus.Counter
	lookupMisses   *prometheus.CounterVec

	// Persistence metrics - fallback chain health
	saves         *prometheus.CounterVec
	saveErrors    *prometheus.CounterVec
	saveFallbacks *prometheus.CounterVec
	loadErrors    *prometheus.CounterVec
	saveQueueDepth prometheus.Gauge

	// State gauges
	teamCount    prometheus.Gauge
	timelineSize prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "youcoder",
		subsystem:        "timeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
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

	m.actionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "actions_started_total",
		Help:      "Total number of action records opened",
	})
	m.actionsStopped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "actions_stopped_total",
		Help:      "Total number of action records closed",
	})
	m.actionsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "actions_deleted_total",
		Help:      "Total number of action records deleted",
	})
	m.labelsAttached = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "labels_attached_total",
		Help:      "Total number of labels attached to open records",
	})
	m.lookupMisses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_miss_total",
		Help:      "Stop/label calls that found no open record (recoverable no-ops)",
	}, []string{"op"})

	m.saves = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "saves_total",
		Help:      "Timeline saves that succeeded, by storage tier",
	}, []string{"tier"})
	m.saveErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_errors_total",
		Help:      "Timeline save failures, by storage tier",
	}, []string{"tier"})
	m.saveFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_fallbacks_total",
		Help:      "Saves that landed on a non-primary tier",
	}, []string{"tier"})
	m.loadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_errors_total",
		Help:      "Timeline load failures, by storage tier",
	}, []string{"tier"})
	m.saveQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_queue_depth",
		Help:      "Pending fire-and-forget save requests",
	})

	m.teamCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "team_count",
		Help:      "Teams currently in the registry",
	})
	m.timelineSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "timeline_actions",
		Help:      "Action records in the active timeline",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint and status code",
	}, []string{"endpoint", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration by endpoint",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})
}

// Handler exposes the custom registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level accessors delegating to the global manager.

func RecordActionStarted()         { globalManager.actionsStarted.Inc() }
func RecordActionStopped()         { globalManager.actionsStopped.Inc() }
func RecordActionDeleted()         { globalManager.actionsDeleted.Inc() }
func RecordLabelAttached()         { globalManager.labelsAttached.Inc() }
func RecordLookupMiss(op string)   { globalManager.lookupMisses.WithLabelValues(op).Inc() }
func RecordSave(tier string)       { globalManager.saves.WithLabelValues(tier).Inc() }
func RecordSaveError(tier string)  { globalManager.saveErrors.WithLabelValues(tier).Inc() }
func RecordSaveFallback(tier string) { globalManager.saveFallbacks.WithLabelValues(tier).Inc() }
func RecordLoadError(tier string)  { globalManager.loadErrors.WithLabelValues(tier).Inc() }

func UpdateSaveQueueDepth(n int) { globalManager.saveQueueDepth.Set(float64(n)) }
func UpdateTeamCount(n int)      { globalManager.teamCount.Set(float64(n)) }
func UpdateTimelineSize(n int)   { globalManager.timelineSize.Set(float64(n)) }

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(endpoint, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, status).Inc()
}

// RecordHTTPDuration records the latency of one served request.
func RecordHTTPDuration(endpoint string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}
