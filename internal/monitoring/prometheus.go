package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics live on a private registry so the exposition endpoint
// only carries service metrics, not the default Go collectors.

var promRegistry = prometheus.NewRegistry()

var (
	promHTTPRequests = promauto.With(promRegistry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "posture",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	promHTTPDuration = promauto.With(promRegistry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "posture",
			Subsystem: "api",
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	promAnalyses = promauto.With(promRegistry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "posture",
			Subsystem: "engine",
			Name:      "analyses_total",
			Help:      "Total number of posture analyses by outcome (scored, insufficient_data)",
		},
		[]string{"outcome"},
	)

	promScores = promauto.With(promRegistry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "posture",
			Subsystem: "engine",
			Name:      "score",
			Help:      "Distribution of posture scores",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 85, 90, 95, 100},
		},
	)

	promEngineFaults = promauto.With(promRegistry).NewCounter(
		prometheus.CounterOpts{
			Namespace: "posture",
			Subsystem: "engine",
			Name:      "faults_total",
			Help:      "Total number of engine failures surfaced as server errors",
		},
	)
)

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	promHTTPRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	promHTTPDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordAnalysisScored records a completed analysis with its score.
func RecordAnalysisScored(score int) {
	promAnalyses.WithLabelValues("scored").Inc()
	promScores.Observe(float64(score))
}

// RecordAnalysisNoData records an insufficient-data analysis outcome.
func RecordAnalysisNoData() {
	promAnalyses.WithLabelValues("insufficient_data").Inc()
}

// RecordEngineFault records an engine failure.
func RecordEngineFault() {
	promEngineFaults.Inc()
}

// PrometheusRegistry returns the registry backing the exposition endpoint.
func PrometheusRegistry() *prometheus.Registry {
	return promRegistry
}
