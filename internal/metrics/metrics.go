// Package metrics holds the Prometheus collectors exposed on the
// monitoring server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PieceTransfersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "piece_transfers_total",
			Help: "Total number of pieces moved between containers",
		},
	)

	PiecesSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pieces_sold_total",
			Help: "Total number of pieces marked sold",
		},
	)
)
