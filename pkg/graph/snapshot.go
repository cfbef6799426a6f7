package graph

// Snapshot is an immutable view of a graph for the duration of one
// computation. Nodes keep insertion order and every adjacency view lists arcs
// in edge insertion order, so algorithms that iterate it are deterministic.
//
// Slices returned by accessors are shared with the snapshot and must be
// treated as read-only.
type Snapshot struct {
	nodes []Node
	edges []Edge
	index map[string]int

	out      [][]Arc
	in       [][]Arc
	adjacent [][]Arc
	incident [][]int
}

func newSnapshot(nodes []Node, edges []Edge) *Snapshot {
	n := len(nodes)
	s := &Snapshot{
		nodes:    nodes,
		edges:    edges,
		index:    make(map[string]int, n),
		out:      make([][]Arc, n),
		in:       make([][]Arc, n),
		adjacent: make([][]Arc, n),
		incident: make([][]int, n),
	}
	for i, node := range nodes {
		s.index[node.ID] = i
	}

	for ei, e := range edges {
		u := s.index[e.Source]
		v := s.index[e.Target]

		s.incident[u] = append(s.incident[u], ei)
		s.incident[v] = append(s.incident[v], ei)

		if u == v {
			s.out[u] = append(s.out[u], Arc{Edge: ei, To: u})
			s.in[u] = append(s.in[u], Arc{Edge: ei, To: u})
			s.adjacent[u] = append(s.adjacent[u], Arc{Edge: ei, To: u})
			continue
		}

		s.adjacent[u] = append(s.adjacent[u], Arc{Edge: ei, To: v})
		s.adjacent[v] = append(s.adjacent[v], Arc{Edge: ei, To: u})

		s.out[u] = append(s.out[u], Arc{Edge: ei, To: v})
		s.in[v] = append(s.in[v], Arc{Edge: ei, To: u})
		if !e.Directed {
			s.out[v] = append(s.out[v], Arc{Edge: ei, To: u})
			s.in[u] = append(s.in[u], Arc{Edge: ei, To: v})
		}
	}

	return s
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Snapshot) EdgeCount() int { return len(s.edges) }

// IsEmpty reports whether the snapshot has no nodes.
func (s *Snapshot) IsEmpty() bool { return s == nil || len(s.nodes) == 0 }

// Nodes returns all nodes in insertion order.
func (s *Snapshot) Nodes() []Node { return s.nodes }

// Edges returns all edges in insertion order.
func (s *Snapshot) Edges() []Edge { return s.edges }

// Node returns the node at index i.
func (s *Snapshot) Node(i int) Node { return s.nodes[i] }

// Edge returns the edge at index i.
func (s *Snapshot) Edge(i int) Edge { return s.edges[i] }

// NodeID returns the identifier of the node at index i.
func (s *Snapshot) NodeID(i int) string { return s.nodes[i].ID }

// IndexOf returns the index of the node with the given ID.
func (s *Snapshot) IndexOf(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Lookup returns the index of id or a NodeNotFound error tagged with op.
func (s *Snapshot) Lookup(op, id string) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return -1, NodeNotFoundError(op, id)
	}
	return i, nil
}

// Out returns the arcs traversable from node i: outgoing directed edges and
// undirected edges in either direction.
func (s *Snapshot) Out(i int) []Arc { return s.out[i] }

// In returns the arcs that can reach node i (the reverse of Out); each
// Arc.To is the predecessor.
func (s *Snapshot) In(i int) []Arc { return s.in[i] }

// Adjacent returns every edge touching node i with direction ignored.
// A self-loop appears once.
func (s *Snapshot) Adjacent(i int) []Arc { return s.adjacent[i] }

// Incident returns the indices of edges incident to node i. A self-loop is
// listed once per endpoint, i.e. twice.
func (s *Snapshot) Incident(i int) []int { return s.incident[i] }

// Signs returns a copy of every edge sign in edge order.
func (s *Snapshot) Signs() []Sign {
	signs := make([]Sign, len(s.edges))
	for i, e := range s.edges {
		signs[i] = e.Sign
	}
	return signs
}

// WithSigns returns a fresh snapshot whose edge signs are taken from signs
// (indexed like Edges). The receiver is left untouched.
func (s *Snapshot) WithSigns(signs []Sign) *Snapshot {
	nodes := make([]Node, len(s.nodes))
	copy(nodes, s.nodes)
	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)
	for i := range edges {
		if i < len(signs) && (signs[i] == Positive || signs[i] == Negative) {
			edges[i].Sign = signs[i]
		}
	}
	return newSnapshot(nodes, edges)
}

// HasDirectedEdges reports whether any edge is directed.
func (s *Snapshot) HasDirectedEdges() bool {
	for _, e := range s.edges {
		if e.Directed {
			return true
		}
	}
	return false
}
