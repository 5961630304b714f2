// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	ResultsIngested  prometheus.Counter
	ResultsDuplicate prometheus.Counter
	ResultsInvalid   prometheus.Counter

	// Table cache metrics
	TableCacheHits   prometheus.Counter
	TableCacheMisses prometheus.Counter
	TablesComputed   prometheus.Counter
	NoTableResults   prometheus.Counter

	// Latency metrics
	AggregationDuration prometheus.Histogram
	SeriesBuildDuration *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "league_table_lab"
	}

	return &Metrics{
		ResultsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "results_ingested_total",
			Help:      "Total number of match results stored",
		}),
		ResultsDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "results_duplicate_total",
			Help:      "Total number of duplicate match results absorbed on ingest",
		}),
		ResultsInvalid: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "results_invalid_total",
			Help:      "Total number of malformed match records rejected on ingest",
		}),
		TableCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tables",
			Name:      "cache_hits_total",
			Help:      "Total number of table requests served from the cache",
		}),
		TableCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tables",
			Name:      "cache_misses_total",
			Help:      "Total number of table requests that required aggregation",
		}),
		TablesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tables",
			Name:      "computed_total",
			Help:      "Total number of tables aggregated and persisted",
		}),
		NoTableResults: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tables",
			Name:      "no_table_total",
			Help:      "Total number of table requests over windows with no matches",
		}),
		AggregationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tables",
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent folding matches into standings",
			Buckets:   prometheus.DefBuckets,
		}),
		SeriesBuildDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "series",
			Name:      "build_duration_seconds",
			Help:      "Time spent building a position or points series",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
