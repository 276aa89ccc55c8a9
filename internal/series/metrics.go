package series

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SeriesBuiltTotal tracks chart series rebuilds.
	SeriesBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_series_built_total",
		Help: "Total number of chart series rebuilds",
	})

	// CountdownTicksTotal tracks countdown clock ticks.
	CountdownTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_countdown_ticks_total",
		Help: "Total number of countdown clock ticks",
	})

	// SecondsToExpiry tracks the remaining time to market expiry.
	SecondsToExpiry = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scalar_terminal_seconds_to_expiry",
		Help: "Seconds remaining until market expiry (0 when expired)",
	})
)
