package algorithms

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/validation"
)

const floatTolerance = 1e-9

// testEdge describes an edge for buildTestGraph. A zero weight is kept as 0.
type testEdge struct {
	source   string
	target   string
	weight   float64
	sign     graph.Sign
	directed bool
}

func undirected(source, target string, weight float64) testEdge {
	return testEdge{source: source, target: target, weight: weight, sign: graph.Positive}
}

func signed(source, target string, sign graph.Sign) testEdge {
	return testEdge{source: source, target: target, weight: 1, sign: sign}
}

func directed(source, target string) testEdge {
	return testEdge{source: source, target: target, weight: 1, sign: graph.Positive, directed: true}
}

// buildTestGraph creates a snapshot with the given nodes and edges, failing
// the test on any builder error.
func buildTestGraph(t *testing.T, nodes []string, edges []testEdge) *graph.Snapshot {
	t.Helper()

	b := graph.NewBuilder()
	if err := b.AddNodes(nodes...); err != nil {
		t.Fatalf("Failed to add nodes: %v", err)
	}
	for _, e := range edges {
		err := b.AddEdge(validation.EdgeElement{
			Source:   e.source,
			Target:   e.target,
			Weight:   e.weight,
			Sign:     e.sign,
			Directed: e.directed,
		})
		if err != nil {
			t.Fatalf("Failed to add edge %s-%s: %v", e.source, e.target, err)
		}
	}
	return b.Build()
}

// sampleGraph is the four-node demo graph: AB=5, BC=3, BD=7, AD=2.
func sampleGraph(t *testing.T) *graph.Snapshot {
	t.Helper()
	return buildTestGraph(t,
		[]string{"A", "B", "C", "D"},
		[]testEdge{
			undirected("A", "B", 5),
			undirected("B", "C", 3),
			undirected("B", "D", 7),
			undirected("A", "D", 2),
		})
}

// unbalancedTriangle is A-B(+), B-C(+), A-C(-).
func unbalancedTriangle(t *testing.T, nodes ...string) *graph.Snapshot {
	t.Helper()
	if len(nodes) == 0 {
		nodes = []string{"A", "B", "C"}
	}
	return buildTestGraph(t, nodes, []testEdge{
		signed("A", "B", graph.Positive),
		signed("B", "C", graph.Positive),
		signed("A", "C", graph.Negative),
	})
}

// randomGraph builds a deterministic pseudo-random signed graph from seed
// with 1..maxNodes nodes. Weights are small integers, so path costs are exact.
func randomGraph(seed int64, maxNodes int) *graph.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	n := 1 + rng.Intn(maxNodes)

	b := graph.NewBuilder()
	ids := make([]string, n)
	for i := range n {
		ids[i] = string(rune('A' + i))
	}
	_ = b.AddNodes(ids...)

	edgeCount := rng.Intn(2*n + 1)
	for range edgeCount {
		sign := graph.Positive
		if rng.Intn(2) == 0 {
			sign = graph.Negative
		}
		_ = b.AddEdge(validation.EdgeElement{
			Source:   ids[rng.Intn(n)],
			Target:   ids[rng.Intn(n)],
			Weight:   float64(rng.Intn(10)),
			Sign:     sign,
			Directed: rng.Intn(2) == 0,
		})
	}
	return b.Build()
}

// floydWarshall returns all-pairs distances over Out arcs.
func floydWarshall(g *graph.Snapshot) [][]float64 {
	n := g.NodeCount()
	dist := make([][]float64, n)
	for i := range n {
		dist[i] = make([]float64, n)
		for j := range n {
			dist[i][j] = math.Inf(1)
		}
		dist[i][i] = 0
	}
	for u := range n {
		for _, arc := range g.Out(u) {
			if w := g.Edge(arc.Edge).Weight; w < dist[u][arc.To] {
				dist[u][arc.To] = w
			}
		}
	}
	for k := range n {
		for i := range n {
			for j := range n {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
				}
			}
		}
	}
	return dist
}

func almostEqual(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	return math.Abs(a-b) <= floatTolerance
}
