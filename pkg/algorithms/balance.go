package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// Group is one side of a two-way partition.
type Group int8

const (
	Unassigned Group = -1
	GroupA     Group = 0
	GroupB     Group = 1
)

// Other returns the opposite group.
func (g Group) Other() Group {
	if g == GroupA {
		return GroupB
	}
	return GroupA
}

// String returns "A", "B" or "unassigned".
func (g Group) String() string {
	switch g {
	case GroupA:
		return "A"
	case GroupB:
		return "B"
	default:
		return "unassigned"
	}
}

// Conflict is an edge whose sign disagrees with the partition: a positive
// edge across groups or a negative edge inside one.
type Conflict struct {
	EdgeID string     `json:"edge_id"`
	Source string     `json:"source"`
	Target string     `json:"target"`
	Sign   graph.Sign `json:"sign"`
}

// PartitionResult is the outcome of sign propagation.
type PartitionResult struct {
	Assignment map[string]Group
	Conflicts  []Conflict
	Components int // components that received a colouring
	Balanced   bool
}

// Members returns the IDs assigned to a group, in node order.
func (r *PartitionResult) Members(g *graph.Snapshot, group Group) []string {
	members := make([]string, 0)
	for _, node := range g.Nodes() {
		if r.Assignment[node.ID] == group {
			members = append(members, node.ID)
		}
	}
	return members
}

// partition is the working state of one propagation pass over a sign vector.
type partition struct {
	groups     []Group
	conflicts  []int // edge indices in discovery order
	components int
}

// propagateSigns two-colours the snapshot by breadth-first propagation,
// reading signs from the given vector (indexed like g.Edges()).
//
// Each component is rooted at the first unassigned node (in node order) that
// has at least one incident edge; isolated nodes stay Unassigned. A positive
// edge puts its neighbour in the same group, a negative edge in the other.
// An edge to an already assigned neighbour that disagrees is recorded once as
// a conflict; existing assignments are never changed.
func propagateSigns(g *graph.Snapshot, signs []graph.Sign) partition {
	n := g.NodeCount()
	p := partition{groups: make([]Group, n)}
	for i := range p.groups {
		p.groups[i] = Unassigned
	}
	conflicted := make([]bool, g.EdgeCount())

	for root := range n {
		if p.groups[root] != Unassigned || len(g.Adjacent(root)) == 0 {
			continue
		}

		p.components++
		p.groups[root] = GroupA
		queue := list.New()
		queue.PushBack(root)

		for queue.Len() > 0 {
			u, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}

			for _, arc := range g.Adjacent(u) {
				v := arc.To
				positive := signs[arc.Edge] == graph.Positive

				if p.groups[v] == Unassigned {
					if positive {
						p.groups[v] = p.groups[u]
					} else {
						p.groups[v] = p.groups[u].Other()
					}
					queue.PushBack(v)
					continue
				}

				sameGroup := p.groups[v] == p.groups[u]
				if sameGroup != positive && !conflicted[arc.Edge] {
					conflicted[arc.Edge] = true
					p.conflicts = append(p.conflicts, arc.Edge)
				}
			}
		}
	}

	return p
}

// PartitionBySign splits the graph into two groups by propagating edge signs
// breadth-first and records every edge that contradicts the split.
//
// Balanced is true iff no conflicts were found. This is a local consistency
// heuristic, not the global structural-balance theorem: the verdict depends on
// BFS order and may disagree with IsGraphStructurallyBalanced.
func PartitionBySign(g *graph.Snapshot) (*PartitionResult, error) {
	if err := requireNodes("PartitionBySign", g); err != nil {
		return nil, err
	}

	p := propagateSigns(g, g.Signs())
	return newPartitionResult(g, p, g.Signs()), nil
}

func newPartitionResult(g *graph.Snapshot, p partition, signs []graph.Sign) *PartitionResult {
	assignment := make(map[string]Group, g.NodeCount())
	for i, group := range p.groups {
		assignment[g.NodeID(i)] = group
	}

	conflicts := make([]Conflict, 0, len(p.conflicts))
	for _, ei := range p.conflicts {
		e := g.Edge(ei)
		conflicts = append(conflicts, Conflict{
			EdgeID: e.ID,
			Source: e.Source,
			Target: e.Target,
			Sign:   signs[ei],
		})
	}

	return &PartitionResult{
		Assignment: assignment,
		Conflicts:  conflicts,
		Components: p.components,
		Balanced:   len(conflicts) == 0,
	}
}

// Triangle is a triple of distinct nodes joined pairwise by edges.
type Triangle struct {
	Nodes   [3]string     `json:"nodes"`
	Signs   [3]graph.Sign `json:"signs"` // signs of (0,1), (1,2), (0,2)
	Product int           `json:"product"`
}

// Balanced reports whether the sign product is positive.
func (t Triangle) Balanced() bool {
	return t.Product > 0
}

// TriangleReport is the outcome of the exhaustive triangle check.
type TriangleReport struct {
	Triangles  int // complete triangles examined
	Unbalanced []Triangle
	Balanced   bool
}

// CheckTriangles examines every unordered triple of distinct nodes. A triple
// with all three connecting edges present is balanced iff the product of the
// three signs is +1; a triple missing an edge is vacuously balanced. The sign
// of a pair is taken from the first edge (in edge order) joining it in either
// direction. Self-loops never take part. O(V³).
func CheckTriangles(g *graph.Snapshot) (*TriangleReport, error) {
	if err := requireNodes("CheckTriangles", g); err != nil {
		return nil, err
	}

	n := g.NodeCount()
	pairSign := make(map[[2]int]graph.Sign)
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		u, _ := g.IndexOf(e.Source)
		v, _ := g.IndexOf(e.Target)
		key := pairKey(u, v)
		if _, seen := pairSign[key]; !seen {
			pairSign[key] = e.Sign
		}
	}

	report := &TriangleReport{Unbalanced: make([]Triangle, 0)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sij, ok := pairSign[pairKey(i, j)]
			if !ok {
				continue
			}
			for k := j + 1; k < n; k++ {
				sjk, ok := pairSign[pairKey(j, k)]
				if !ok {
					continue
				}
				sik, ok := pairSign[pairKey(i, k)]
				if !ok {
					continue
				}

				report.Triangles++
				t := Triangle{
					Nodes:   [3]string{g.NodeID(i), g.NodeID(j), g.NodeID(k)},
					Signs:   [3]graph.Sign{sij, sjk, sik},
					Product: sij.Int() * sjk.Int() * sik.Int(),
				}
				if !t.Balanced() {
					report.Unbalanced = append(report.Unbalanced, t)
				}
			}
		}
	}

	report.Balanced = len(report.Unbalanced) == 0
	return report, nil
}

// IsGraphStructurallyBalanced reports whether every triangle has a positive
// sign product.
func IsGraphStructurallyBalanced(g *graph.Snapshot) (bool, error) {
	report, err := CheckTriangles(g)
	if err != nil {
		return false, err
	}
	return report.Balanced, nil
}

func pairKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}
