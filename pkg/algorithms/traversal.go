package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// TraversalResult is the visit order of a search from one start node.
type TraversalResult struct {
	Start string
	Order []string
	Depth map[string]int // hops from Start along the search tree
}

// Visited reports whether id was reached.
func (r *TraversalResult) Visited(id string) bool {
	_, ok := r.Depth[id]
	return ok
}

// BFS visits every node reachable from startID in breadth-first order,
// following directed edges forwards and undirected edges both ways.
// Neighbours are expanded in edge insertion order.
func BFS(g *graph.Snapshot, startID string) (*TraversalResult, error) {
	if err := requireNodes("BFS", g); err != nil {
		return nil, err
	}
	start, err := g.Lookup("BFS", startID)
	if err != nil {
		return nil, err
	}

	depth := make([]int, g.NodeCount())
	for i := range depth {
		depth[i] = -1
	}
	depth[start] = 0

	order := []int{start}
	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		u, ok := queue.Remove(queue.Front()).(int)
		if !ok {
			continue
		}
		for _, arc := range g.Out(u) {
			if depth[arc.To] >= 0 {
				continue
			}
			depth[arc.To] = depth[u] + 1
			order = append(order, arc.To)
			queue.PushBack(arc.To)
		}
	}

	return newTraversalResult(g, startID, order, depth), nil
}

// DFS visits every node reachable from startID in depth-first pre-order.
// The walk is iterative but yields the same order as the recursive version:
// neighbours are explored in edge insertion order.
func DFS(g *graph.Snapshot, startID string) (*TraversalResult, error) {
	if err := requireNodes("DFS", g); err != nil {
		return nil, err
	}
	start, err := g.Lookup("DFS", startID)
	if err != nil {
		return nil, err
	}

	depth := make([]int, g.NodeCount())
	for i := range depth {
		depth[i] = -1
	}

	type frame struct {
		node int
		next int // position in g.Out(node) to resume from
	}

	depth[start] = 0
	order := []int{start}
	stack := []frame{{node: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		arcs := g.Out(top.node)

		descended := false
		for top.next < len(arcs) {
			v := arcs[top.next].To
			top.next++
			if depth[v] >= 0 {
				continue
			}
			depth[v] = depth[top.node] + 1
			order = append(order, v)
			stack = append(stack, frame{node: v})
			descended = true
			break
		}

		if !descended {
			stack = stack[:len(stack)-1]
		}
	}

	return newTraversalResult(g, startID, order, depth), nil
}

func newTraversalResult(g *graph.Snapshot, start string, order, depth []int) *TraversalResult {
	result := &TraversalResult{
		Start: start,
		Order: make([]string, 0, len(order)),
		Depth: make(map[string]int, len(order)),
	}
	for _, i := range order {
		id := g.NodeID(i)
		result.Order = append(result.Order, id)
		result.Depth[id] = depth[i]
	}
	return result
}
