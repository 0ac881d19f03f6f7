package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railops_cache_lookups_total",
		Help: "Response cache lookups by endpoint kind and result (hit or miss)",
	}, []string{"kind", "result"})

	cacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railops_cache_evictions_total",
		Help: "Entries dropped from the response cache by expiry or the LRU bound",
	})

	cacheSweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railops_cache_sweeps_total",
		Help: "Full clears of the response cache",
	})

	providerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railops_provider_requests_total",
		Help: "Text generation requests by outcome",
	}, []string{"outcome"})

	providerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "railops_provider_request_duration_seconds",
		Help:    "Latency of text generation requests",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railops_fallbacks_total",
		Help: "Operations answered with local fallback data, by operation and reason",
	}, []string{"operation", "reason"})

	resyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railops_resyncs_total",
		Help: "Bulk registry resyncs by result",
	}, []string{"result"})

	registryTrains = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "railops_registry_trains",
		Help: "Number of trains held by the registry",
	})

	reconcileIgnoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railops_reconcile_ignored_candidates_total",
		Help: "Provider candidates dropped by the reconciler (unknown id or invalid overlay)",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railops_http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "railops_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	httpTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railops_http_timeouts_total",
		Help: "Requests answered with 504 after the request deadline expired",
	})
)

// ObserveCacheLookup counts a cache hit or miss for an endpoint kind.
func ObserveCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(kind, result).Inc()
}

func IncCacheEvictions() {
	cacheEvictionsTotal.Inc()
}

func IncCacheSweeps() {
	cacheSweepsTotal.Inc()
}

// ObserveProviderRequest records one provider call.
func ObserveProviderRequest(outcome string, seconds float64) {
	providerRequestsTotal.WithLabelValues(outcome).Inc()
	providerDuration.Observe(seconds)
}

func IncFallback(operation, reason string) {
	fallbacksTotal.WithLabelValues(operation, reason).Inc()
}

func IncResync(result string) {
	resyncsTotal.WithLabelValues(result).Inc()
}

func SetRegistrySize(n int) {
	registryTrains.Set(float64(n))
}

func AddReconcileIgnored(n int) {
	if n > 0 {
		reconcileIgnoredTotal.Add(float64(n))
	}
}

func ObserveHTTPRequest(route, method string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

func IncHTTPTimeout() {
	httpTimeoutsTotal.Inc()
}
