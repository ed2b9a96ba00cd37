// Package metrics holds Prometheus instruments that are used across the
// backend.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songify_http_requests_total",
			Help: "HTTP requests by route pattern, method, and status code.",
		},
		[]string{"route", "method", "code"})

	QueueAddTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "songify_queue_add_total",
			Help: "Cumulative number of queue entries added.",
		})

	QueuePlayedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "songify_queue_played_total",
			Help: "Cumulative number of entries marked played, clears included.",
		})

	AuthRejectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "songify_auth_rejects_total",
			Help: "Cumulative number of access-key mismatches.",
		})

	CanvasCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "songify_canvas_cache_hits_total",
			Help: "Canvas lookups answered from the cache table.",
		})

	CanvasCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "songify_canvas_cache_misses_total",
			Help: "Canvas lookups that went to the origin service.",
		})

	CanvasOriginErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "songify_canvas_origin_errors_total",
			Help: "Origin calls that failed, timed out, or had no URL.",
		})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		QueueAddTotal,
		QueuePlayedTotal,
		AuthRejectsTotal,
		CanvasCacheHits,
		CanvasCacheMisses,
		CanvasOriginErrors,
	)
}
