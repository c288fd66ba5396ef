// Package metrics provides the centralized Prometheus registry for the
// picks service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PicksGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "picks_generated_total",
		Help:      "Total number of picks generated",
	}, []string{"league", "bet_type"})
	SlatesBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "slates_built_total",
		Help:      "Total number of slates built",
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "provider_requests_total",
		Help:      "Total number of provider API requests by operation and status",
	}, []string{"operation", "status"})
	ProviderCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "provider_cache_hits_total",
		Help:      "Total number of provider response cache hits",
	})
	ProviderCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "provider_cache_misses_total",
		Help:      "Total number of provider response cache misses",
	})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of provider circuit breaker trips",
	})
	FixturesIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "fixtures_ingested_total",
		Help:      "Total number of fixtures ingested",
	}, []string{"league"})
	OddsSnapshotsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "odds_snapshots_ingested_total",
		Help:      "Total number of odds snapshots ingested",
	}, []string{"league"})
	IngestionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "ingestion_errors_total",
		Help:      "Total number of ingestion errors",
	})
	BacktestRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edge_picks",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs",
	})
)

// Gauge metrics
var (
	LastSlateSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "edge_picks",
		Name:      "last_slate_size",
		Help:      "Number of fixtures in the most recently built slate",
	}, []string{"league"})
	LastIngestionTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "edge_picks",
		Name:      "last_ingestion_timestamp_seconds",
		Help:      "Unix timestamp of the last successful ingestion run",
	})
)

// Histogram metrics
var (
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "edge_picks",
		Name:      "provider_request_duration_seconds",
		Help:      "Provider API request duration by operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	SlateBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edge_picks",
		Name:      "slate_build_duration_seconds",
		Help:      "Time taken to build a full slate of picks",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edge_picks",
		Name:      "ingestion_duration_seconds",
		Help:      "Time taken by a full ingestion run",
		Buckets:   []float64{1, 5, 15, 30, 60, 300, 900, 3600},
	})
)

// Registry returns the global metrics registry, initializing it on first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			PicksGeneratedTotal,
			SlatesBuiltTotal,
			ProviderRequestsTotal,
			ProviderCacheHitsTotal,
			ProviderCacheMissesTotal,
			CircuitBreakerTripsTotal,
			FixturesIngestedTotal,
			OddsSnapshotsIngestedTotal,
			IngestionErrorsTotal,
			BacktestRunsTotal,
			LastSlateSize,
			LastIngestionTimestamp,
			ProviderRequestDuration,
			SlateBuildDuration,
			IngestionDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// StartServer starts a metrics listener on the given address. It returns
// the server so callers can shut it down gracefully.
func StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		// ErrServerClosed is the normal shutdown path.
		_ = srv.ListenAndServe()
	}()
	return srv
}
