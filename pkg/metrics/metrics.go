// Package metrics defines the Prometheus metric collectors used across the
// index and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the index. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	DocsIndexedTotal       prometheus.Counter
	DocsRemovedTotal       prometheus.Counter
	DuplicatesRemovedTotal prometheus.Counter
	LiveDocuments          prometheus.Gauge
	IndexedTerms           prometheus.Gauge
	SearchQueriesTotal     *prometheus.CounterVec
	SearchLatency          *prometheus.HistogramVec
	SearchResultsCount     prometheus.Histogram
	MatchRequestsTotal     *prometheus.CounterVec
	NoResultRequests       prometheus.Gauge
}

// New creates all collectors and registers them with reg. A nil reg uses
// the Prometheus default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added to the index.",
			},
		),
		DocsRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_removed_total",
				Help: "Total documents removed from the index.",
			},
		),
		DuplicatesRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicates_removed_total",
				Help: "Total documents removed as duplicates of an earlier document.",
			},
		),
		LiveDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_live_documents",
				Help: "Number of documents currently in the index.",
			},
		),
		IndexedTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_terms",
				Help: "Number of distinct terms with a non-empty posting list.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by execution mode and result type (hit, zero_result, error).",
			},
			[]string{"mode", "result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"mode"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		MatchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "match_requests_total",
				Help: "Total match-document requests by execution mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		NoResultRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "no_result_requests",
				Help: "Searches without results inside the trailing request window.",
			},
		),
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.DocsRemovedTotal,
		m.DuplicatesRemovedTotal,
		m.LiveDocuments,
		m.IndexedTerms,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.MatchRequestsTotal,
		m.NoResultRequests,
	)

	return m
}

// ObserveSearch records one search call.
func (m *Metrics) ObserveSearch(mode string, results int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	resultType := "hit"
	switch {
	case err != nil:
		resultType = "error"
	case results == 0:
		resultType = "zero_result"
	}
	m.SearchQueriesTotal.WithLabelValues(mode, resultType).Inc()
	if err != nil {
		return
	}
	m.SearchLatency.WithLabelValues(mode).Observe(elapsed.Seconds())
	m.SearchResultsCount.Observe(float64(results))
}

// ObserveMatch records one match-document call.
func (m *Metrics) ObserveMatch(mode string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.MatchRequestsTotal.WithLabelValues(mode, outcome).Inc()
}

// ObserveIndexSize publishes the current document and term counts.
func (m *Metrics) ObserveIndexSize(docs, terms int) {
	if m == nil {
		return
	}
	m.LiveDocuments.Set(float64(docs))
	m.IndexedTerms.Set(float64(terms))
}

// DocumentAdded increments the indexed counter.
func (m *Metrics) DocumentAdded() {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.Inc()
}

// DocumentRemoved increments the removed counter.
func (m *Metrics) DocumentRemoved() {
	if m == nil {
		return
	}
	m.DocsRemovedTotal.Inc()
}

// DuplicatesRemoved adds n to the duplicate counter.
func (m *Metrics) DuplicatesRemoved(n int) {
	if m == nil {
		return
	}
	m.DuplicatesRemovedTotal.Add(float64(n))
}

// SetNoResultRequests publishes the request window's empty-result count.
func (m *Metrics) SetNoResultRequests(n int) {
	if m == nil {
		return
	}
	m.NoResultRequests.Set(float64(n))
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
