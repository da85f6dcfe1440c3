package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts requests answered from a fresh cache entry
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livechannels_cache_hits_total",
		Help: "Total number of channel requests served from a fresh cache entry",
	}, []string{"source"})

	// CacheMisses counts requests that found no entry or a stale one
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livechannels_cache_misses_total",
		Help: "Total number of channel requests that required a refresh",
	}, []string{"source"})

	// Refreshes counts successful playlist refreshes
	Refreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livechannels_refreshes_total",
		Help: "Total number of successful playlist refreshes",
	}, []string{"source"})

	// RefreshFailures counts failed refreshes by stage (fetch, cache, config)
	RefreshFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livechannels_refresh_failures_total",
		Help: "Total number of failed playlist refreshes",
	}, []string{"source", "stage"})

	// SharedRefreshes counts callers that joined a refresh already in flight
	SharedRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livechannels_shared_refreshes_total",
		Help: "Total number of requests that shared an in-flight refresh",
	}, []string{"source"})

	// FetchDuration tracks upstream playlist fetch latency
	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "livechannels_fetch_duration_seconds",
		Help:    "Upstream playlist fetch and parse duration",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
)

// RecordCacheHit increments the hit counter for a source
func RecordCacheHit(source string) {
	CacheHits.WithLabelValues(source).Inc()
}

// RecordCacheMiss increments the miss counter for a source
func RecordCacheMiss(source string) {
	CacheMisses.WithLabelValues(source).Inc()
}

// RecordRefresh increments the refresh counter for a source
func RecordRefresh(source string) {
	Refreshes.WithLabelValues(source).Inc()
}

// RecordRefreshFailure increments the failure counter for a source and stage
func RecordRefreshFailure(source, stage string) {
	RefreshFailures.WithLabelValues(source, stage).Inc()
}

// RecordSharedRefresh increments the shared refresh counter for a source
func RecordSharedRefresh(source string) {
	SharedRefreshes.WithLabelValues(source).Inc()
}
