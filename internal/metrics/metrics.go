// Package metrics exposes Prometheus collectors for path planning, the path
// cache and the data provider.
package metrics

import (
	"net/http"

	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dronedelivery"

var _ ports.SearchMetrics = (*Metrics)(nil)

// Metrics groups the collectors. Build it once per registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	SearchesTotal     prometheus.Counter
	EmptyResultsTotal prometheus.Counter
	ExhaustedTotal    prometheus.Counter
	ExpandedNodes     prometheus.Histogram
	SearchDuration    prometheus.Histogram
	CacheHitsTotal    prometheus.Counter
	CacheMissesTotal  prometheus.Counter
	UpstreamRequests  *prometheus.CounterVec
	UpstreamDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of path searches",
		}),
		EmptyResultsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_empty_results_total",
			Help:      "Total number of searches that found no path",
		}),
		ExhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_exhausted_total",
			Help:      "Total number of searches stopped by the expansion budget",
		}),
		ExpandedNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_expanded_nodes",
			Help:      "Nodes expanded per search",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 9),
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Path search duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_cache_hits_total",
			Help:      "Total path cache hits",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_cache_misses_total",
			Help:      "Total path cache misses",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ilp_requests_total",
			Help:      "Data provider requests by resource and outcome",
		}, []string{"resource", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ilp_request_duration_seconds",
			Help:      "Data provider request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.EmptyResultsTotal,
		m.ExhaustedTotal,
		m.ExpandedNodes,
		m.SearchDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.UpstreamRequests,
		m.UpstreamDuration,
	)
	return m
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(path services.Path, seconds float64) {
	m.SearchesTotal.Inc()
	m.ExpandedNodes.Observe(float64(path.Expanded))
	m.SearchDuration.Observe(seconds)
	if path.IsEmpty() {
		m.EmptyResultsTotal.Inc()
	}
	if path.Exhausted {
		m.ExhaustedTotal.Inc()
	}
}

// ObserveCache records a path cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.CacheHitsTotal.Inc()
		return
	}
	m.CacheMissesTotal.Inc()
}

// ObserveUpstream records one data provider request.
func (m *Metrics) ObserveUpstream(resource string, err error, seconds float64) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(resource, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(resource).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
