package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// Component is a maximal set of nodes connected when edge direction is
// ignored. Nodes are listed in BFS order from the lowest-index member.
type Component struct {
	ID    int
	Nodes []string
}

// GraphProperties summarises the shape of a snapshot.
type GraphProperties struct {
	NodeCount     int     `json:"node_count"`
	EdgeCount     int     `json:"edge_count"`
	Density       float64 `json:"density"`
	AverageDegree float64 `json:"average_degree"`
	Components    int     `json:"components"`
	Connected     bool    `json:"connected"`
	SelfLoops     int     `json:"self_loops"`
	MultiEdges    bool    `json:"multi_edges"`
	NegativeEdges int     `json:"negative_edges"`
	Directed      bool    `json:"directed"`
}

// ConnectedComponents partitions the nodes into weakly connected components.
// Every isolated node is a component of its own.
func ConnectedComponents(g *graph.Snapshot) ([]Component, error) {
	if err := requireNodes("ConnectedComponents", g); err != nil {
		return nil, err
	}

	n := g.NodeCount()
	visited := make([]bool, n)
	components := make([]Component, 0)

	for start := range n {
		if visited[start] {
			continue
		}

		component := Component{ID: len(components), Nodes: make([]string, 0)}
		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			u, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, g.NodeID(u))

			for _, arc := range g.Adjacent(u) {
				if !visited[arc.To] {
					visited[arc.To] = true
					queue.PushBack(arc.To)
				}
			}
		}

		components = append(components, component)
	}

	return components, nil
}

// Describe computes node and edge counts, density, average degree,
// component count, self-loops, parallel edges and negative edges.
//
// Density is E/(V(V-1)) when any edge is directed and 2E/(V(V-1)) otherwise,
// and 0 for fewer than two nodes. Average degree is 2E/V. Two non-loop edges
// joining the same pair of nodes, in either direction, count as a multi-edge.
func Describe(g *graph.Snapshot) (*GraphProperties, error) {
	if err := requireNodes("Describe", g); err != nil {
		return nil, err
	}

	v := float64(g.NodeCount())
	e := float64(g.EdgeCount())
	props := &GraphProperties{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Directed:  g.HasDirectedEdges(),
	}

	if g.NodeCount() >= 2 {
		possible := v * (v - 1)
		if props.Directed {
			props.Density = e / possible
		} else {
			props.Density = 2 * e / possible
		}
	}
	props.AverageDegree = 2 * e / v

	components, err := ConnectedComponents(g)
	if err != nil {
		return nil, err
	}
	props.Components = len(components)
	props.Connected = props.Components == 1

	seenPairs := make(map[[2]int]struct{}, g.EdgeCount())
	for _, edge := range g.Edges() {
		if edge.Sign == graph.Negative {
			props.NegativeEdges++
		}
		if edge.IsSelfLoop() {
			props.SelfLoops++
			continue
		}

		u, _ := g.IndexOf(edge.Source)
		w, _ := g.IndexOf(edge.Target)
		key := pairKey(u, w)
		if _, dup := seenPairs[key]; dup {
			props.MultiEdges = true
		}
		seenPairs[key] = struct{}{}
	}

	return props, nil
}
