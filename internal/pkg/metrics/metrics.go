// Package metrics holds the Prometheus collectors for the assistant. Every
// Metrics value owns its registry, so tests can build as many as they need.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foodbot"

// Metrics records intent traffic and finalization latency.
type Metrics struct {
	registry *prometheus.Registry

	Intents  *prometheus.CounterVec
	Finalize *prometheus.HistogramVec
}

// New creates the collectors. activeCarts is sampled on every scrape.
func New(activeCarts func() int) *Metrics {
	registry := prometheus.NewRegistry()

	intents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_total",
		Help:      "Webhook intents handled, by intent and outcome.",
	}, []string{"intent", "outcome"})

	finalize := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_finalize_duration_seconds",
		Help:      "Time spent finalizing a cart into an order.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	registry.MustRegister(
		intents,
		finalize,
		collectors.NewGoCollector(),
	)

	if activeCarts != nil {
		registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_carts",
			Help:      "Sessions currently holding a cart.",
		}, func() float64 { return float64(activeCarts()) }))
	}

	return &Metrics{registry: registry, Intents: intents, Finalize: finalize}
}

// ObserveIntent counts one handled intent.
func (m *Metrics) ObserveIntent(intent, outcome string) {
	m.Intents.WithLabelValues(intent, outcome).Inc()
}

// ObserveFinalize records how long a finalization took.
func (m *Metrics) ObserveFinalize(outcome string, elapsed time.Duration) {
	m.Finalize.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
