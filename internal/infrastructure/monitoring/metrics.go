package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the catalog service.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	SessionsActive    prometheus.Gauge
	SessionsCreated   prometheus.Counter
	SessionsCompleted prometheus.Counter
	SessionsDeleted   prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector registered on reg. Passing a
// dedicated registry keeps tests from colliding on the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studysync_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studysync_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "studysync_sessions_active",
				Help: "Number of sessions in the active set",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "studysync_sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		SessionsCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "studysync_sessions_completed_total",
				Help: "Total number of sessions marked complete",
			},
		),
		SessionsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "studysync_sessions_deleted_total",
				Help: "Total number of sessions deleted",
			},
		),
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "studysync_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// SetSessionsActive updates the active-set gauge
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncSessionsCreated increments the created counter
func (m *Metrics) IncSessionsCreated() {
	m.SessionsCreated.Inc()
}

// IncSessionsCompleted increments the completed counter
func (m *Metrics) IncSessionsCompleted() {
	m.SessionsCompleted.Inc()
}

// IncSessionsDeleted increments the deleted counter
func (m *Metrics) IncSessionsDeleted() {
	m.SessionsDeleted.Inc()
}
