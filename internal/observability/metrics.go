package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisory service.
type Metrics struct {
	QueriesTotal         *prometheus.CounterVec // labels: intent
	ClarificationsTotal  *prometheus.CounterVec // labels: missing={city,activity}
	RecommendationsTotal *prometheus.CounterVec // labels: tier={excellent,good,moderate,poor}

	// Weather provider metrics.
	SnapshotRequests *prometheus.CounterVec // labels: outcome={success,not_found,error}
	SnapshotDuration prometheus.Histogram

	// Advice event publishing metrics.
	AdviceEventsPublished prometheus.Counter
	AdvicePublishErrors   prometheus.Counter
	PublisherEnabled      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_advisor",
			Name:      "queries_total",
			Help:      "Total queries answered, by classified intent.",
		}, []string{"intent"}),
		ClarificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_advisor",
			Name:      "clarifications_total",
			Help:      "Queries answered with a clarification question, by missing entity.",
		}, []string{"missing"}),
		RecommendationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_advisor",
			Name:      "recommendations_total",
			Help:      "Activity recommendations issued, by tier.",
		}, []string{"tier"}),
		SnapshotRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_advisor",
			Name:      "snapshot_requests_total",
			Help:      "Weather provider requests, by outcome.",
		}, []string{"outcome"}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_advisor",
			Name:      "snapshot_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AdviceEventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_advisor",
			Name:      "advice_events_published_total",
			Help:      "Advice analytics events written to the sink topic.",
		}),
		AdvicePublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_advisor",
			Name:      "advice_publish_errors_total",
			Help:      "Failed advice event publishes.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_advisor",
			Name:      "advice_publisher_enabled",
			Help:      "1 when the advice event publisher is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.QueriesTotal,
		m.ClarificationsTotal,
		m.RecommendationsTotal,
		m.SnapshotRequests,
		m.SnapshotDuration,
		m.AdviceEventsPublished,
		m.AdvicePublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QueriesTotal:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_advisor", Name: "queries_total"}, []string{"intent"}),
		ClarificationsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_advisor", Name: "clarifications_total"}, []string{"missing"}),
		RecommendationsTotal:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_advisor", Name: "recommendations_total"}, []string{"tier"}),
		SnapshotRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_advisor", Name: "snapshot_requests_total"}, []string{"outcome"}),
		SnapshotDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_advisor", Name: "snapshot_request_duration_seconds"}),
		AdviceEventsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_advisor", Name: "advice_events_published_total"}),
		AdvicePublishErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_advisor", Name: "advice_publish_errors_total"}),
		PublisherEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_advisor", Name: "advice_publisher_enabled"}),
	}
}
