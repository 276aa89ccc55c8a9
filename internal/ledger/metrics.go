package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LedgerSize tracks the number of records currently held.
	LedgerSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scalar_terminal_ledger_size",
		Help: "Number of trade records in the ledger",
	})

	// InsertsTotal tracks ledger inserts.
	InsertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_ledger_inserts_total",
		Help: "Total number of trade records inserted",
	})

	// EvictionsTotal tracks records dropped by the capacity bound.
	EvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_ledger_evictions_total",
		Help: "Total number of trade records evicted by truncation",
	})

	// StatusUpdatesTotal tracks reconciled status changes by new status.
	StatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scalar_terminal_ledger_status_updates_total",
			Help: "Total number of trade status updates",
		},
		[]string{"status"},
	)

	// SaveFailuresTotal tracks swallowed persistence failures.
	SaveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scalar_terminal_ledger_save_failures_total",
		Help: "Total number of best-effort ledger saves that failed",
	})
)
