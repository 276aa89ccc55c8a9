package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BreakerOpen is 1 while submissions are suspended.
	BreakerOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scalar_terminal_breaker_open",
		Help: "Whether the submission circuit breaker is open (1) or closed (0)",
	})

	// BreakerConsecutiveFailures tracks the current failure streak.
	BreakerConsecutiveFailures = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scalar_terminal_breaker_consecutive_failures",
		Help: "Current number of consecutive submission failures",
	})

	// BreakerStateChanges counts open/close transitions.
	BreakerStateChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_breaker_state_changes_total",
		Help: "Total number of circuit breaker state changes",
	})
)
