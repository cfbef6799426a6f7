package algorithms

import (
	"container/heap"
	"math"
	"sort"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// MaxScore caps scores whose exact value overflows, such as the closeness of
// a node whose total distance is subnormal.
const MaxScore = math.MaxFloat64

// NodeScore pairs a node with a score.
type NodeScore struct {
	NodeID string  `json:"node_id"`
	Score  float64 `json:"score"`
}

// ScoreVector holds one score per node, in snapshot node order.
type ScoreVector []NodeScore

func newScoreVector(g *graph.Snapshot, scores []float64) ScoreVector {
	v := make(ScoreVector, len(scores))
	for i, s := range scores {
		v[i] = NodeScore{NodeID: g.NodeID(i), Score: s}
	}
	return v
}

// Map returns the scores keyed by node ID.
func (v ScoreVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v))
	for _, ns := range v {
		m[ns.NodeID] = ns.Score
	}
	return m
}

// Get returns the score of a node, or 0 when absent.
func (v ScoreVector) Get(nodeID string) float64 {
	for _, ns := range v {
		if ns.NodeID == nodeID {
			return ns.Score
		}
	}
	return 0
}

// Sum returns the sum of all scores.
func (v ScoreVector) Sum() float64 {
	sum := 0.0
	for _, ns := range v {
		sum += ns.Score
	}
	return sum
}

// L2Norm returns the Euclidean norm of the scores.
func (v ScoreVector) L2Norm() float64 {
	sq := 0.0
	for _, ns := range v {
		sq += ns.Score * ns.Score
	}
	return math.Sqrt(sq)
}

// Ranked returns a copy sorted by descending score. Equal scores keep node
// order.
func (v ScoreVector) Ranked() ScoreVector {
	ranked := make(ScoreVector, len(v))
	copy(ranked, v)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// rankedNodeHeap implements a min-heap of positioned scores.
// The root is the weakest entry kept so far; among equal scores the entry
// that appears later in node order is weaker.
type rankedNodeHeap []rankedEntry

type rankedEntry struct {
	pos int
	NodeScore
}

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return weaker(h[i], h[j]) }
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(rankedEntry))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// Top returns the n highest scores in descending order using a min-heap.
// Time complexity: O(len(v) log n).
func (v ScoreVector) Top(n int) ScoreVector {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for pos, ns := range v {
		entry := rankedEntry{pos: pos, NodeScore: ns}
		if h.Len() < n {
			heap.Push(&h, entry)
		} else if weaker(h[0], entry) {
			heap.Pop(&h)
			heap.Push(&h, entry)
		}
	}

	// Extract elements from heap (will be in ascending order)
	result := make(ScoreVector, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(rankedEntry).NodeScore
	}
	return result
}

// weaker reports whether a ranks below b.
func weaker(a, b rankedEntry) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.pos > b.pos
}
