package exchange

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks execution service requests by endpoint and outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scalar_terminal_exchange_requests_total",
			Help: "Total number of execution service requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// RequestDuration tracks request latency by endpoint.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scalar_terminal_exchange_request_duration_seconds",
			Help:    "Execution service request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)
