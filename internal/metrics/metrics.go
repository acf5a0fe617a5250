package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zainjo",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zainjo",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ChunkLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zainjo",
			Subsystem: "archive",
			Name:      "chunk_loads_total",
			Help:      "Chunk files loaded from disk",
		},
		[]string{"status"},
	)

	ChunkCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zainjo",
			Subsystem: "archive",
			Name:      "chunk_cache_hits_total",
			Help:      "Chunk lookups served from the in-memory LRU",
		},
	)

	ChunkCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zainjo",
			Subsystem: "archive",
			Name:      "chunk_cache_misses_total",
			Help:      "Chunk lookups that required a disk read",
		},
	)
)
