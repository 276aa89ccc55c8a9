package markets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHitsTotal tracks market data served from cache.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_markets_cache_hits_total",
		Help: "Total number of market data cache hits",
	})

	// CacheMissesTotal tracks market data cache misses.
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_markets_cache_misses_total",
		Help: "Total number of market data cache misses",
	})
)
