package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initConvergenceMetrics() {
	r.Iterations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "iterations",
			Help:      "Rounds executed by iterative algorithms",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 200, 500},
		},
		[]string{"algorithm"},
	)

	r.NonConvergentTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "non_convergent_total",
			Help:      "Iterative runs that ended without converging, by final state",
		},
		[]string{"algorithm", "state"},
	)

	r.DegeneracyTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "degeneracy_total",
			Help:      "Numeric degeneracies handled by fallback (zero-sum or zero-norm iterates)",
		},
		[]string{"algorithm"},
	)
}
