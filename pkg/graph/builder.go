package graph

import (
	"fmt"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/validation"
)

// Builder assembles a Snapshot. It is the single place where raw weights and
// signs are coerced into typed fields.
type Builder struct {
	nodes     []Node
	edges     []Edge
	nodeIndex map[string]int
	edgeIDs   map[string]struct{}
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		nodeIndex: make(map[string]int),
		edgeIDs:   make(map[string]struct{}),
	}
}

// AddNode adds a node. Node IDs must be unique.
func (b *Builder) AddNode(id, label string) error {
	el := validation.NodeElement{ID: id, Label: label}
	if err := validation.ValidateNodeElement(&el); err != nil {
		return invalidElementError("AddNode", id, err)
	}
	if _, exists := b.nodeIndex[id]; exists {
		return duplicateNodeError(id)
	}

	b.nodeIndex[id] = len(b.nodes)
	b.nodes = append(b.nodes, Node{ID: id, Label: label})
	return nil
}

// AddNodes adds several unlabeled nodes, stopping at the first error.
func (b *Builder) AddNodes(ids ...string) error {
	for _, id := range ids {
		if err := b.AddNode(id, id); err != nil {
			return err
		}
	}
	return nil
}

// AddEdge adds an edge between two existing nodes. An empty ID is replaced
// with "source->target#n".
func (b *Builder) AddEdge(el validation.EdgeElement) error {
	if err := validation.ValidateEdgeElement(&el); err != nil {
		return invalidElementError("AddEdge", el.ID, err)
	}

	id := el.ID
	if id == "" {
		id = fmt.Sprintf("%s->%s#%d", el.Source, el.Target, len(b.edges))
	}
	if _, exists := b.edgeIDs[id]; exists {
		return duplicateEdgeError(id)
	}
	if _, ok := b.nodeIndex[el.Source]; !ok {
		return danglingEdgeError(id, el.Source)
	}
	if _, ok := b.nodeIndex[el.Target]; !ok {
		return danglingEdgeError(id, el.Target)
	}

	b.edgeIDs[id] = struct{}{}
	b.edges = append(b.edges, Edge{
		ID:       id,
		Source:   el.Source,
		Target:   el.Target,
		Weight:   ParseWeight(el.Weight),
		Directed: el.Directed,
		Sign:     ParseSign(el.Sign, el.Weight),
	})
	return nil
}

// Connect adds an undirected edge with the given weight and sign.
func (b *Builder) Connect(source, target string, weight float64, sign Sign) error {
	return b.AddEdge(validation.EdgeElement{
		Source: source,
		Target: target,
		Weight: weight,
		Sign:   sign,
	})
}

// Link adds a directed edge with weight 1 and a positive sign.
func (b *Builder) Link(source, target string) error {
	return b.AddEdge(validation.EdgeElement{
		Source:   source,
		Target:   target,
		Directed: true,
	})
}

// Build returns an immutable snapshot of everything added so far. The
// builder may keep being used; later additions do not affect the snapshot.
func (b *Builder) Build() *Snapshot {
	nodes := make([]Node, len(b.nodes))
	copy(nodes, b.nodes)
	edges := make([]Edge, len(b.edges))
	copy(edges, b.edges)
	return newSnapshot(nodes, edges)
}
