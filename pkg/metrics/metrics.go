// Package metrics defines the Prometheus collectors recorded during an
// indexing run and exports them to a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons used as the "reason" label of DocumentsSkippedTotal.
const (
	SkipDirectory  = "directory"
	SkipUnreadable = "unreadable"
)

// Query results used as the "result" label of QueriesTotal.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

// Metrics holds all Prometheus collectors for one run.
type Metrics struct {
	DocumentsIndexedTotal prometheus.Counter
	DocumentsSkippedTotal *prometheus.CounterVec
	TokensTotal           prometheus.Counter
	VocabularySize        prometheus.Gauge
	IndexBuildDuration    prometheus.Histogram
	RankingsComputedTotal prometheus.Counter
	QueriesTotal          *prometheus.CounterVec
	CacheHitsTotal        prometheus.Counter
	CacheMissesTotal      prometheus.Counter

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		DocumentsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termrank_documents_indexed_total",
				Help: "Total documents added to the corpus index.",
			},
		),
		DocumentsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termrank_documents_skipped_total",
				Help: "Total directory entries skipped by reason (directory, unreadable).",
			},
			[]string{"reason"},
		),
		TokensTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termrank_tokens_total",
				Help: "Total lexer events counted towards document length.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termrank_vocabulary_size",
				Help: "Number of distinct tokens in the IDF table.",
			},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "termrank_index_build_duration_seconds",
				Help:    "Time spent building the corpus, IDF table included.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		RankingsComputedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termrank_rankings_computed_total",
				Help: "Total per-token rankings computed.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termrank_queries_total",
				Help: "Total queries by result (found, not_found).",
			},
			[]string{"result"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termrank_ranking_cache_hits_total",
				Help: "Total ranking lookups served from the memo.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termrank_ranking_cache_misses_total",
				Help: "Total ranking lookups that had to compute a ranking.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.DocumentsIndexedTotal,
		m.DocumentsSkippedTotal,
		m.TokensTotal,
		m.VocabularySize,
		m.IndexBuildDuration,
		m.RankingsComputedTotal,
		m.QueriesTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Registry exposes the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the Prometheus text format to
// path. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
