// Package observability exposes Prometheus instrumentation for the API
// server and the admin bot on a private registry.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels used on request and update counters.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeDenied   = "denied"
	OutcomeIgnored  = "ignored"
	OutcomeFallback = "fallback"
)

// Metrics bundles the collectors both binaries report into.
type Metrics struct {
	registry *prometheus.Registry

	// AggregateRequests counts aggregation endpoint hits by outcome.
	AggregateRequests *prometheus.CounterVec
	// AggregateDuration observes aggregation latency in seconds.
	AggregateDuration prometheus.Histogram
	// BotUpdates counts processed bot updates by outcome.
	BotUpdates *prometheus.CounterVec
}

// New builds a Metrics set on a fresh registry with standard process and Go
// runtime collectors attached.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		AggregateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelfcore",
			Name:      "aggregate_requests_total",
			Help:      "Aggregation endpoint requests by outcome.",
		}, []string{"outcome"}),
		AggregateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shelfcore",
			Name:      "aggregate_duration_seconds",
			Help:      "Latency of building the aggregation payload.",
			Buckets:   prometheus.DefBuckets,
		}),
		BotUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelfcore",
			Name:      "bot_updates_total",
			Help:      "Processed bot updates by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AggregateRequests,
		m.AggregateDuration,
		m.BotUpdates,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
