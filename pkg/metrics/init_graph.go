package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	sizeBuckets := prometheus.ExponentialBuckets(1, 4, 10)

	r.SnapshotNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "snapshot_nodes",
			Help:      "Node count of analysed snapshots",
			Buckets:   sizeBuckets,
		},
	)

	r.SnapshotEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "snapshot_edges",
			Help:      "Edge count of analysed snapshots",
			Buckets:   sizeBuckets,
		},
	)

	r.LastSnapshotNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_snapshot_nodes",
			Help:      "Node count of the most recently analysed snapshot",
		},
	)

	r.LastSnapshotEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_snapshot_edges",
			Help:      "Edge count of the most recently analysed snapshot",
		},
	)
}
