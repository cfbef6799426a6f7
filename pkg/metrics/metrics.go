package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initAlgorithmMetrics()
	r.initConvergenceMetrics()
	r.initBalanceMetrics()
	r.initGraphMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// for pickup by a node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}

// StartRun marks a run as in flight and returns a func that records its
// outcome and duration.
func (r *Registry) StartRun(algorithm string) func(outcome string) {
	start := time.Now()
	r.RunsInFlight.Inc()
	return func(outcome string) {
		r.RunsInFlight.Dec()
		r.RecordRun(algorithm, outcome, time.Since(start))
	}
}

// RecordRun records a finished algorithm run
func (r *Registry) RecordRun(algorithm, outcome string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(algorithm, outcome).Inc()
	r.RunDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordConvergence records the rounds of an iterative run. Runs that ended
// in any state other than "converged" are also counted as non-convergent.
func (r *Registry) RecordConvergence(algorithm string, iterations int, state string) {
	r.Iterations.WithLabelValues(algorithm).Observe(float64(iterations))
	if state != "converged" {
		r.NonConvergentTotal.WithLabelValues(algorithm, state).Inc()
	}
}

// RecordDegeneracy counts numeric fallbacks taken during a run
func (r *Registry) RecordDegeneracy(algorithm string, count int) {
	if count <= 0 {
		return
	}
	r.DegeneracyTotal.WithLabelValues(algorithm).Add(float64(count))
}

// RecordConflicts records a partition conflict count at a stage
// ("partition", "repair_initial", "repair_remaining").
func (r *Registry) RecordConflicts(stage string, conflicts int) {
	r.PartitionConflicts.WithLabelValues(stage).Observe(float64(conflicts))
}

// RecordRepair records the outcome of a balance repair
func (r *Registry) RecordRepair(state string, initial, remaining, flipped int) {
	r.RecordConflicts("repair_initial", initial)
	r.RecordConflicts("repair_remaining", remaining)
	r.RepairFlipsTotal.Add(float64(flipped))
	r.RepairOutcomes.WithLabelValues(state).Inc()
}

// RecordSnapshot records the size of an analysed snapshot
func (r *Registry) RecordSnapshot(nodes, edges int) {
	r.SnapshotNodes.Observe(float64(nodes))
	r.SnapshotEdges.Observe(float64(edges))
	r.LastSnapshotNodes.Set(float64(nodes))
	r.LastSnapshotEdges.Set(float64(edges))
}

// UpdateSystemMetrics samples uptime, goroutines and memory
func (r *Registry) UpdateSystemMetrics() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
	r.MemorySysBytes.Set(float64(mem.Sys))
}
