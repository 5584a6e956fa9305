package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nuclralert_web"

// Metrics holds the Prometheus counters and histograms for the dashboard service.
type Metrics struct {
	// Backend client metrics.
	BackendRequests *prometheus.CounterVec   // labels: endpoint={load_data,get_data,health}, outcome={success,not_found,network_error,server_error}
	BackendDuration *prometheus.HistogramVec // labels: endpoint

	// Dashboard cycle metrics.
	DashboardFetches   *prometheus.CounterVec // labels: outcome={loaded,error,stale}
	LazyInits          prometheus.Counter
	UnrecognizedSafety prometheus.Counter

	// Alert notification metrics.
	AlertsPublished *prometheus.CounterVec // labels: level, outcome={published,failed,dropped}
	AlertQueueDepth prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "NuclrAlert backend requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "NuclrAlert backend request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		DashboardFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_fetches_total",
			Help:      "Dashboard fetch cycles by outcome.",
		}, []string{"outcome"}),
		LazyInits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lazy_init_total",
			Help:      "Fetch cycles that found no plants and triggered /load_data.",
		}),
		UnrecognizedSafety: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unrecognized_safety_total",
			Help:      "Plant and distance records whose Safety value was not recognized.",
		}),
		AlertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_published_total",
			Help:      "Alert events by level and publication outcome.",
		}, []string{"level", "outcome"}),
		AlertQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_queue_depth",
			Help:      "Alert events waiting for the notification worker.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BackendRequests,
		m.BackendDuration,
		m.DashboardFetches,
		m.LazyInits,
		m.UnrecognizedSafety,
		m.AlertsPublished,
		m.AlertQueueDepth,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
