package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Dataset metrics
	DatasetRecords *prometheus.GaugeVec

	// Snapshot metrics
	SnapshotSwapsTotal *prometheus.CounterVec

	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// LLM provider metrics
	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderDurationSeconds *prometheus.HistogramVec

	// Retrieval metrics
	RetrievalHitsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPDurationSeconds *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Dataset metrics
		DatasetRecords: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "advisor_dataset_records",
				Help: "Structured records currently loaded by kind",
			},
			[]string{"kind"}, // kind: modules, segments, schedule_entries
		),

		// Snapshot metrics
		SnapshotSwapsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_snapshot_swaps_total",
				Help: "Total number of snapshot hot-swaps by status",
			},
			[]string{"status"}, // status: success, error
		),

		// Chat metrics
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_chat_requests_total",
				Help: "Total number of chat requests by intent and status",
			},
			[]string{"intent", "status"}, // intent: schedule, modules_list, module_info, general
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_chat_duration_seconds",
				Help:    "Chat request duration in seconds by intent",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"intent"},
		),

		// LLM provider metrics
		ProviderRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_provider_requests_total",
				Help: "Total number of LLM provider requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error, timeout
		),

		ProviderDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_provider_duration_seconds",
				Help:    "LLM provider request duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"provider"},
		),

		// Retrieval metrics
		RetrievalHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_retrieval_hits_total",
				Help: "Total number of handbook retrievals by confidence band",
			},
			[]string{"band"}, // band: high, medium, low
		),

		// HTTP metrics
		HTTPRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		HTTPDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisor_http_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"route"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: timeout, bad_request, internal
		),
	}

	return m
}

// SetDatasetRecords records how many structured records are loaded
func (m *Metrics) SetDatasetRecords(kind string, count int) {
	m.DatasetRecords.WithLabelValues(kind).Set(float64(count))
}

// RecordSnapshotSwap records a snapshot hot-swap attempt
func (m *Metrics) RecordSnapshotSwap(status string) {
	m.SnapshotSwapsTotal.WithLabelValues(status).Inc()
}

// RecordChatRequest records a chat request
func (m *Metrics) RecordChatRequest(intent, status string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(intent, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordProviderRequest records an LLM provider request
func (m *Metrics) RecordProviderRequest(provider, status string, duration float64) {
	m.ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	m.ProviderDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordRetrievalHit records a handbook retrieval by confidence band
func (m *Metrics) RecordRetrievalHit(band string) {
	m.RetrievalHitsTotal.WithLabelValues(band).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(route, code string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
	m.HTTPDurationSeconds.WithLabelValues(route).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}
