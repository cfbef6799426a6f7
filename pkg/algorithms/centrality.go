package algorithms

import (
	"container/list"
	"math"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// DegreeCentrality counts the edges incident to each node. A self-loop
// counts once per endpoint, so the degree sum is always 2·|edges|.
func DegreeCentrality(g *graph.Snapshot) (ScoreVector, error) {
	if err := requireNodes("DegreeCentrality", g); err != nil {
		return nil, err
	}

	degree := make([]float64, g.NodeCount())
	for i := range degree {
		degree[i] = float64(len(g.Incident(i)))
	}

	return newScoreVector(g, degree), nil
}

// ClosenessCentrality computes 1 / Σ(finite weighted distances to others)
// for every node, running Dijkstra from each source over traversable arcs.
// A node that reaches nothing (sum 0) scores 0. A score that would overflow
// is clamped to MaxScore.
func ClosenessCentrality(g *graph.Snapshot) (ScoreVector, error) {
	if err := requireNodes("ClosenessCentrality", g); err != nil {
		return nil, err
	}

	n := g.NodeCount()
	closeness := make([]float64, n)

	for source := range n {
		dist, _ := dijkstra(g, source, -1)

		totalDistance := 0.0
		for v, d := range dist {
			if v == source || math.IsInf(d, 1) {
				continue
			}
			totalDistance = addCost(totalDistance, d)
		}

		if totalDistance > 0 {
			closeness[source] = math.Min(1.0/totalDistance, MaxScore)
		} else {
			closeness[source] = 0.0
		}
	}

	return newScoreVector(g, closeness), nil
}

// BetweennessCentrality computes betweenness with Brandes' algorithm over
// unweighted BFS on traversable arcs.
//
// Scores are the raw accumulated dependencies. They are deliberately NOT
// halved for undirected graphs, so an undirected path A-B-C gives B a score
// of 2 rather than the textbook 1. Consumers rely on this magnitude.
func BetweennessCentrality(g *graph.Snapshot) (ScoreVector, error) {
	if err := requireNodes("BetweennessCentrality", g); err != nil {
		return nil, err
	}

	n := g.NodeCount()
	betweenness := make([]float64, n)

	for source := range n {
		stack, sigma, predecessors := brandesBFS(g, source)
		brandesAccumulate(source, stack, sigma, predecessors, betweenness)
	}

	return newScoreVector(g, betweenness), nil
}

// brandesBFS performs the BFS phase from source and returns the visit stack,
// shortest-path counts and predecessor lists. Parallel edges each contribute
// a distinct shortest path.
func brandesBFS(g *graph.Snapshot, source int) (stack []int, sigma []float64, predecessors [][]int) {
	n := g.NodeCount()
	stack = make([]int, 0, n)
	predecessors = make([][]int, n)
	sigma = make([]float64, n)
	distance := make([]int, n)
	for i := range distance {
		distance[i] = -1
	}

	sigma[source] = 1.0
	distance[source] = 0

	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		v, ok := queue.Remove(queue.Front()).(int)
		if !ok {
			continue
		}
		stack = append(stack, v)

		for _, arc := range g.Out(v) {
			w := arc.To

			if distance[w] < 0 {
				queue.PushBack(w)
				distance[w] = distance[v] + 1
			}

			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	return stack, sigma, predecessors
}

// brandesAccumulate back-propagates pair dependencies in reverse BFS order
// and adds delta(w) to every w other than the source.
func brandesAccumulate(source int, stack []int, sigma []float64, predecessors [][]int, betweenness []float64) {
	delta := make([]float64, len(sigma))

	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range predecessors[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
		}
		if w != source {
			betweenness[w] += delta[w]
		}
	}
}

// CentralityResult bundles all three node centralities.
type CentralityResult struct {
	Degree      ScoreVector
	Closeness   ScoreVector
	Betweenness ScoreVector
}

// ComputeAllCentrality computes degree, closeness and betweenness in one call.
func ComputeAllCentrality(g *graph.Snapshot) (*CentralityResult, error) {
	degree, err := DegreeCentrality(g)
	if err != nil {
		return nil, err
	}

	closeness, err := ClosenessCentrality(g)
	if err != nil {
		return nil, err
	}

	betweenness, err := BetweennessCentrality(g)
	if err != nil {
		return nil, err
	}

	return &CentralityResult{
		Degree:      degree,
		Closeness:   closeness,
		Betweenness: betweenness,
	}, nil
}
