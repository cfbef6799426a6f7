package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBalanceMetrics() {
	r.PartitionConflicts = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "partition_conflicts",
			Help:      "Conflicting edges reported by sign partitioning",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		},
		[]string{"stage"},
	)

	r.RepairFlipsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "repair_flips_total",
			Help:      "Edge signs changed by balance repair",
		},
	)

	r.RepairOutcomes = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "repair_outcomes_total",
			Help:      "Balance repair runs by final state",
		},
		[]string{"state"},
	)
}
