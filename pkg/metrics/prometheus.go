// Package metrics provides Prometheus metrics for the league service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the league service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Standings
	standingsRecomputes      *prometheus.CounterVec
	standingsComputeDuration prometheus.Histogram

	// Data loads
	dataLoads        *prometheus.CounterVec
	dataLoadDuration prometheus.Histogram
	teamsTotal       prometheus.Gauge
	matchesTotal     prometheus.Gauge

	// Edits and preferences
	edits                   *prometheus.CounterVec
	scoreValidationFailures prometheus.Counter
	favoriteToggles         *prometheus.CounterVec
	noticeRaises            prometheus.Counter
	kvOperationDuration     *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure replaces the process-wide manager with one built from opts on a
// fresh registry. Call it once at startup, before serving GetRegistry.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(append([]Option(nil), opts...), WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "league",
		subsystem:        "standings",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.standingsRecomputes = auto.NewCounterVec(
		m.counterOpts("recomputes_total", "Standings recomputations by trigger (load, edit)"),
		[]string{"trigger"},
	)
	m.standingsComputeDuration = auto.NewHistogram(
		m.histogramOpts("compute_duration_milliseconds", "Time spent recomputing the standings table", m.histogramBuckets),
	)

	m.dataLoads = auto.NewCounterVec(
		m.counterOpts("data_loads_total", "League data loads by outcome"),
		[]string{"outcome"},
	)
	m.dataLoadDuration = auto.NewHistogram(
		m.histogramOpts("data_load_duration_milliseconds", "League data load duration including simulated delay", m.histogramBuckets),
	)
	m.teamsTotal = auto.NewGauge(m.gaugeOpts("teams", "Teams currently in the table"))
	m.matchesTotal = auto.NewGauge(m.gaugeOpts("matches", "Matches currently held"))

	m.edits = auto.NewCounterVec(
		m.counterOpts("edits_total", "Edit sessions by kind (match, team) and outcome (started, saved, cancelled, rejected)"),
		[]string{"kind", "outcome"},
	)
	m.scoreValidationFailures = auto.NewCounter(
		m.counterOpts("score_validation_failures_total", "Score updates rejected for being out of range"),
	)
	m.favoriteToggles = auto.NewCounterVec(
		m.counterOpts("favorite_toggles_total", "Favorite team toggles by action (set, cleared)"),
		[]string{"action"},
	)
	m.noticeRaises = auto.NewCounter(m.counterOpts("success_notices_total", "Save success notices raised"))
	m.kvOperationDuration = auto.NewHistogramVec(
		m.histogramOpts("kv_operation_duration_milliseconds", "Preference store operation latency", m.histogramBuckets),
		[]string{"op"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordStandingsRecompute counts a recomputation and its duration.
func RecordStandingsRecompute(trigger string, durationMs float64) {
	globalManager.standingsRecomputes.WithLabelValues(trigger).Inc()
	globalManager.standingsComputeDuration.Observe(durationMs)
}

// RecordDataLoad counts a load attempt by outcome ("success", "failure").
func RecordDataLoad(outcome string, durationMs float64) {
	globalManager.dataLoads.WithLabelValues(outcome).Inc()
	globalManager.dataLoadDuration.Observe(durationMs)
}

// UpdateLeagueSize sets the team and match gauges.
func UpdateLeagueSize(teams, matches int) {
	globalManager.teamsTotal.Set(float64(teams))
	globalManager.matchesTotal.Set(float64(matches))
}

// RecordEdit counts an edit session transition.
func RecordEdit(kind, outcome string) {
	globalManager.edits.WithLabelValues(kind, outcome).Inc()
}

// RecordScoreValidationFailure counts a rejected score update.
func RecordScoreValidationFailure() {
	globalManager.scoreValidationFailures.Inc()
}

// RecordFavoriteToggle counts a favorite change ("set", "cleared").
func RecordFavoriteToggle(action string) {
	globalManager.favoriteToggles.WithLabelValues(action).Inc()
}

// RecordNoticeRaised counts a raised success notice.
func RecordNoticeRaised() {
	globalManager.noticeRaises.Inc()
}

// RecordKVOperation records a preference store operation latency.
func RecordKVOperation(op string, durationMs float64) {
	globalManager.kvOperationDuration.WithLabelValues(op).Observe(durationMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
