package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "read_cache_hits_total",
		Help: "Total number of read cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "read_cache_misses_total",
		Help: "Total number of read cache misses",
	})

	cacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "read_cache_invalidations_total",
		Help: "Total number of cache entries dropped by tag invalidation",
	})
)

func recordHit()          { cacheHits.Inc() }
func recordMiss()         { cacheMisses.Inc() }
func recordInvalidation() { cacheInvalidations.Inc() }
