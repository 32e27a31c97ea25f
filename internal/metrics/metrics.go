package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyst_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyst_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyst_queries_total",
			Help: "Total number of submitted queries by classified kind",
		},
		[]string{"kind"},
	)

	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyst_simulations_total",
			Help: "Total number of finished simulated-work tasks by outcome",
		},
		[]string{"outcome"},
	)

	simulationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analyst_simulation_duration_seconds",
			Help:    "Simulated-work task duration in seconds",
			Buckets: []float64{0.1, 1, 5, 10, 15, 20, 30},
		},
	)

	progressEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analyst_progress_events_total",
			Help: "Total number of emitted progress events",
		},
	)

	mirrorFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyst_mirror_failures_total",
			Help: "Total number of failed durable mirror operations",
		},
		[]string{"op"},
	)

	liveSendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analyst_live_send_failures_total",
			Help: "Total number of failed pushes to live subscribers",
		},
	)

	liveSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "analyst_live_subscribers",
			Help: "Number of active live progress subscribers",
		},
	)

	initOnce sync.Once
)

// Simulation outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeError     = "error"
)

// InitMetrics registers collectors with the default registry
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			queriesTotal,
			simulationsTotal,
			simulationDuration,
			progressEventsTotal,
			mirrorFailuresTotal,
			liveSendFailuresTotal,
			liveSubscribers,
		)
	})
}

// Handler returns an HTTP handler for Prometheus metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordQuery counts a submitted query by kind
func RecordQuery(kind string) {
	queriesTotal.WithLabelValues(kind).Inc()
}

// RecordSimulation records a finished simulated-work task
func RecordSimulation(outcome string, duration time.Duration) {
	simulationsTotal.WithLabelValues(outcome).Inc()
	simulationDuration.Observe(duration.Seconds())
}

// RecordProgressEvent counts an emitted progress event
func RecordProgressEvent() {
	progressEventsTotal.Inc()
}

// RecordMirrorFailure counts a failed mirror read or write
func RecordMirrorFailure(op string) {
	mirrorFailuresTotal.WithLabelValues(op).Inc()
}

// RecordLiveSendFailure counts a failed push to a live subscriber
func RecordLiveSendFailure() {
	liveSendFailuresTotal.Inc()
}

// AddLiveSubscribers adjusts the live subscriber gauge
func AddLiveSubscribers(delta int) {
	liveSubscribers.Add(float64(delta))
}
