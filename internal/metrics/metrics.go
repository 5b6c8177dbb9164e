package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Farescope. Collectors
// are registered on the given Registerer; the repo exposes no scrape
// endpoint, the embedding process owns exposition.
type MetricsRegistry struct {
	// Report Metrics
	ReportQueriesTotal  prometheus.CounterVec
	ReportQueryErrors   prometheus.CounterVec
	ReportQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// View Metrics
	ViewRefreshDuration prometheus.Histogram
	BaseRelationRows    prometheus.Gauge

	// Snapshot Metrics
	SnapshotDuration prometheus.Histogram
}

// NewMetricsRegistry initializes all metrics against reg. Pass
// prometheus.DefaultRegisterer in production; tests pass a fresh
// registry so registration never collides.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		ReportQueriesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farescope_report_queries_total",
				Help: "Total catalog report executions by report name",
			},
			[]string{"report"},
		),
		ReportQueryErrors: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farescope_report_query_errors_total",
				Help: "Total catalog report failures by report name",
			},
			[]string{"report"},
		),
		ReportQueryDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farescope_report_query_duration_seconds",
				Help:    "Catalog report execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"report"},
		),

		CacheHitsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farescope_cache_hits_total",
				Help: "Total report cache hits by report name",
			},
			[]string{"report"},
		),
		CacheMissesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farescope_cache_misses_total",
				Help: "Total report cache misses by report name",
			},
			[]string{"report"},
		),

		ViewRefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "farescope_view_refresh_duration_seconds",
				Help:    "fare_stats materialized view refresh time in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		BaseRelationRows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "farescope_base_relation_rows",
				Help: "Current row count of the airlines base relation",
			},
		),

		SnapshotDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "farescope_snapshot_duration_seconds",
				Help:    "Full dashboard snapshot time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}
}
