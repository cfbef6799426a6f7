package algorithms

import (
	"container/heap"
	"math"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// Distances maps node ID to the minimum cumulative weight from a source.
// Unreached nodes hold math.Inf(1), never a numeric placeholder.
type Distances map[string]float64

// Reachable reports whether the node was assigned a finite distance.
func (d Distances) Reachable(nodeID string) bool {
	v, ok := d[nodeID]
	return ok && !math.IsInf(v, 1)
}

// PathResult is the outcome of a single-pair shortest path query.
// Found is false when the target cannot be reached; Cost is then +Inf.
type PathResult struct {
	Source string
	Target string
	Path   []string
	Cost   float64
	Found  bool
}

// Hops returns the number of edges on the path.
func (r *PathResult) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// pqItem is a tentative distance for a node. Stale items are skipped on pop.
type pqItem struct {
	node     int
	distance float64
}

// distanceQueue is a min-heap ordered by distance, then node index, so that
// among equal tentative distances the node first in iteration order wins.
type distanceQueue []pqItem

func (q distanceQueue) Len() int { return len(q) }
func (q distanceQueue) Less(i, j int) bool {
	if q[i].distance != q[j].distance {
		return q[i].distance < q[j].distance
	}
	return q[i].node < q[j].node
}
func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distanceQueue) Push(x any) {
	*q = append(*q, x.(pqItem))
}

func (q *distanceQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[0 : n-1]
	return x
}

// dijkstra runs single-source Dijkstra over Out arcs. With target >= 0 it
// stops as soon as the target is settled. Relaxation uses a strict
// comparison, so the first predecessor found for a given cost is kept.
func dijkstra(g *graph.Snapshot, source, target int) (dist []float64, prev []int) {
	n := g.NodeCount()
	dist = make([]float64, n)
	prev = make([]int, n)
	visited := make([]bool, n)
	for i := range n {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[source] = 0

	pq := make(distanceQueue, 0, n)
	heap.Push(&pq, pqItem{node: source, distance: 0})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(pqItem)
		u := current.node
		if visited[u] || current.distance > dist[u] {
			continue
		}
		if math.IsInf(current.distance, 1) {
			break
		}
		visited[u] = true
		if u == target {
			break
		}

		for _, arc := range g.Out(u) {
			v := arc.To
			if visited[v] {
				continue
			}
			newDist := addCost(dist[u], g.Edge(arc.Edge).Weight)
			if newDist < dist[v] {
				dist[v] = newDist
				prev[v] = u
				heap.Push(&pq, pqItem{node: v, distance: newDist})
			}
		}
	}

	return dist, prev
}

// addCost sums two path costs, saturating at math.MaxFloat64 so that a
// reachable node never reads as unreachable.
func addCost(a, b float64) float64 {
	if sum := a + b; !math.IsInf(sum, 1) {
		return sum
	}
	return math.MaxFloat64
}

// ShortestPath finds the minimum-cost path between two nodes using Dijkstra's
// algorithm. Directed edges are followed forward only; undirected edges in
// both directions.
//
// An unreachable target is a normal result (Found == false), not an error.
// Costs saturate at math.MaxFloat64 instead of overflowing.
// Unknown node IDs fail with ErrNodeNotFound and an empty snapshot with
// ErrEmptyGraph.
func ShortestPath(g *graph.Snapshot, sourceID, targetID string) (*PathResult, error) {
	if err := requireNodes("ShortestPath", g); err != nil {
		return nil, err
	}
	source, ok := g.IndexOf(sourceID)
	if !ok {
		return nil, nodeNotFoundError("ShortestPath", sourceID)
	}
	target, ok := g.IndexOf(targetID)
	if !ok {
		return nil, nodeNotFoundError("ShortestPath", targetID)
	}

	dist, prev := dijkstra(g, source, target)
	path := reconstructPath(g, prev, target)

	if len(path) == 0 || path[0] != sourceID {
		return &PathResult{
			Source: sourceID,
			Target: targetID,
			Cost:   math.Inf(1),
			Found:  false,
		}, nil
	}

	return &PathResult{
		Source: sourceID,
		Target: targetID,
		Path:   path,
		Cost:   dist[target],
		Found:  true,
	}, nil
}

// reconstructPath walks predecessors back from target and returns the IDs
// from the chain's root to target.
func reconstructPath(g *graph.Snapshot, prev []int, target int) []string {
	path := make([]string, 0)
	for node := target; node != -1; node = prev[node] {
		path = append(path, g.NodeID(node))
	}

	// Reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SingleSourceDistances returns the minimum cost from source to every node.
func SingleSourceDistances(g *graph.Snapshot, sourceID string) (Distances, error) {
	if err := requireNodes("SingleSourceDistances", g); err != nil {
		return nil, err
	}
	source, ok := g.IndexOf(sourceID)
	if !ok {
		return nil, nodeNotFoundError("SingleSourceDistances", sourceID)
	}

	dist, _ := dijkstra(g, source, -1)

	distances := make(Distances, len(dist))
	for i, d := range dist {
		distances[g.NodeID(i)] = d
	}
	return distances, nil
}
