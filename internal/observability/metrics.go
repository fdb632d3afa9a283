package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequests counts gateway requests by table, method, and outcome.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribex_gateway_requests_total",
		Help: "Total number of gateway requests by table, method, and outcome",
	}, []string{"table", "method", "outcome"})

	// StoreFallbacks counts fallback activations by store operation.
	StoreFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribex_store_fallbacks_total",
		Help: "Total number of local fallback activations by store operation",
	}, []string{"operation"})

	// CacheHits counts read-through cache hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribex_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts read-through cache misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribex_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// AuthEvents counts auth state changes delivered to subscribers.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tribex_auth_events_total",
		Help: "Total number of auth state change events by type",
	}, []string{"event"})
)
