package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "graph_analyzer"

// Registry holds all metrics for the application
type Registry struct {
	// Algorithm run metrics
	RunsTotal    *prometheus.CounterVec
	RunDuration  *prometheus.HistogramVec
	RunsInFlight prometheus.Gauge

	// Convergence metrics (PageRank, HITS, repair)
	Iterations         *prometheus.HistogramVec
	NonConvergentTotal *prometheus.CounterVec
	DegeneracyTotal    *prometheus.CounterVec

	// Structural balance metrics
	PartitionConflicts *prometheus.HistogramVec
	RepairFlipsTotal   prometheus.Counter
	RepairOutcomes     *prometheus.CounterVec

	// Snapshot metrics
	SnapshotNodes     prometheus.Histogram
	SnapshotEdges     prometheus.Histogram
	LastSnapshotNodes prometheus.Gauge
	LastSnapshotEdges prometheus.Gauge

	// System metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)
