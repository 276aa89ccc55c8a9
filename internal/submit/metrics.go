package submit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts order submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scalar_terminal_submissions_total",
		Help: "Total order submissions by outcome",
	}, []string{"outcome"})

	// RefreshesTotal counts status refreshes by outcome.
	RefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scalar_terminal_status_refreshes_total",
		Help: "Total order status refreshes by outcome",
	}, []string{"outcome"})

	// CancelsTotal counts cancellation requests by outcome.
	CancelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scalar_terminal_cancels_total",
		Help: "Total order cancellations by outcome",
	}, []string{"outcome"})
)
