// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHitsTotal counts result pages served from the cache.
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yomira",
		Subsystem: "search",
		Name:      "cache_hits_total",
		Help:      "Total number of result cache hits",
	})

	// cacheMissesTotal counts lookups that fell through to the data source.
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yomira",
		Subsystem: "search",
		Name:      "cache_misses_total",
		Help:      "Total number of result cache misses",
	})

	// cacheEvictionsTotal counts entries removed by the access-time sweep.
	cacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yomira",
		Subsystem: "search",
		Name:      "cache_evictions_total",
		Help:      "Total number of expired result cache entries evicted",
	})

	// cacheEntries tracks the live entry count.
	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "yomira",
		Subsystem: "search",
		Name:      "cache_entries",
		Help:      "Number of entries currently held by the result cache",
	})

	// requestsTotal counts service operations by outcome.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yomira",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total number of search operations",
		},
		[]string{"operation", "status"},
	)

	// requestDuration measures service operation latency.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yomira",
			Subsystem: "search",
			Name:      "request_duration_seconds",
			Help:      "Duration of search operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// enrichmentFailuresTotal counts favorite lookups that degraded to "not favorited".
	enrichmentFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yomira",
		Subsystem: "search",
		Name:      "enrichment_failures_total",
		Help:      "Total number of failed favorite-state lookups",
	})

	// queryLogTotal counts query log entries by fate.
	queryLogTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yomira",
			Subsystem: "search",
			Name:      "querylog_entries_total",
			Help:      "Total number of query log entries by outcome",
		},
		[]string{"status"},
	)
)

// Query log outcomes.
const (
	queryLogWritten = "written"
	queryLogFailed  = "failed"
	queryLogDropped = "dropped"
)

// recordRequest records one service operation.
func recordRequest(operation string, startTime time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	requestsTotal.WithLabelValues(operation, status).Inc()
	requestDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
}
