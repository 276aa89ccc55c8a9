package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExtractTotal tracks normalized status extractions by payload shape and
	// resulting status. Shape "none" covers unrecognized payloads.
	ExtractTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scalar_terminal_status_extract_total",
			Help: "Total number of status payload normalizations",
		},
		[]string{"shape", "status"},
	)
)
