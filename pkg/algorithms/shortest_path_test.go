package algorithms

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// TestShortestPath_SampleGraph tests the weighted route through B
func TestShortestPath_SampleGraph(t *testing.T) {
	g := sampleGraph(t)

	result, err := ShortestPath(g, "A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}

	if !result.Found {
		t.Fatal("Expected path A->C to be found")
	}
	if result.Cost != 8 {
		t.Errorf("Expected cost 8, got %f", result.Cost)
	}
	if !slices.Equal(result.Path, []string{"A", "B", "C"}) {
		t.Errorf("Expected path [A B C], got %v", result.Path)
	}
	if result.Hops() != 2 {
		t.Errorf("Expected 2 hops, got %d", result.Hops())
	}
}

// TestShortestPath_PrefersCheaperDetour tests that A->D uses the direct edge
func TestShortestPath_PrefersCheaperDetour(t *testing.T) {
	g := sampleGraph(t)

	result, err := ShortestPath(g, "B", "D")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}

	// B-A-D costs 7 as well as B-D; the direct edge is discovered first.
	if result.Cost != 7 {
		t.Errorf("Expected cost 7, got %f", result.Cost)
	}
	if !slices.Equal(result.Path, []string{"B", "D"}) {
		t.Errorf("Expected path [B D], got %v", result.Path)
	}
}

// TestShortestPath_DeterministicTie tests that equal-cost routes resolve the same way every run
func TestShortestPath_DeterministicTie(t *testing.T) {
	g := sampleGraph(t)

	// D-B-C and D-A-B-C both cost 10.
	for range 20 {
		result, err := ShortestPath(g, "D", "C")
		if err != nil {
			t.Fatalf("ShortestPath failed: %v", err)
		}
		if result.Cost != 10 {
			t.Fatalf("Expected cost 10, got %f", result.Cost)
		}
		if !slices.Equal(result.Path, []string{"D", "B", "C"}) {
			t.Fatalf("Expected path [D B C], got %v", result.Path)
		}
	}
}

// TestShortestPath_SameNode tests that a node reaches itself at cost 0
func TestShortestPath_SameNode(t *testing.T) {
	g := sampleGraph(t)

	result, err := ShortestPath(g, "B", "B")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}

	if !result.Found || result.Cost != 0 {
		t.Errorf("Expected found path with cost 0, got found=%v cost=%f", result.Found, result.Cost)
	}
	if !slices.Equal(result.Path, []string{"B"}) {
		t.Errorf("Expected path [B], got %v", result.Path)
	}
}

// TestShortestPath_DirectedUnreachable tests that directed edges are not walked backwards
func TestShortestPath_DirectedUnreachable(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B"}, []testEdge{directed("A", "B")})

	forward, err := ShortestPath(g, "A", "B")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !forward.Found {
		t.Error("Expected A->B to be found")
	}

	backward, err := ShortestPath(g, "B", "A")
	if err != nil {
		t.Fatalf("Unreachable target should not be an error: %v", err)
	}
	if backward.Found {
		t.Error("Expected B->A to be unreachable")
	}
	if !math.IsInf(backward.Cost, 1) {
		t.Errorf("Expected +Inf cost, got %f", backward.Cost)
	}
	if backward.Path != nil {
		t.Errorf("Expected nil path, got %v", backward.Path)
	}
}

// TestShortestPath_Disconnected tests separate components
func TestShortestPath_Disconnected(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{undirected("A", "B", 1)})

	result, err := ShortestPath(g, "A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if result.Found {
		t.Error("Expected no path between components")
	}
}

// TestShortestPath_ZeroWeight tests that zero is a legal weight
func TestShortestPath_ZeroWeight(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{
		undirected("A", "B", 0),
		undirected("B", "C", 0),
		undirected("A", "C", 1),
	})

	result, err := ShortestPath(g, "A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if result.Cost != 0 {
		t.Errorf("Expected cost 0, got %f", result.Cost)
	}
	if !slices.Equal(result.Path, []string{"A", "B", "C"}) {
		t.Errorf("Expected path [A B C], got %v", result.Path)
	}
}

// TestShortestPath_UnknownNode tests that missing endpoints are reported
func TestShortestPath_UnknownNode(t *testing.T) {
	g := sampleGraph(t)

	_, err := ShortestPath(g, "A", "Z")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Expected ErrNodeNotFound, got %v", err)
	}
	if !errors.Is(err, graph.ErrNodeNotFound) {
		t.Error("Expected error to match graph.ErrNodeNotFound")
	}

	var algErr *AlgorithmError
	if !errors.As(err, &algErr) || algErr.NodeID != "Z" {
		t.Errorf("Expected AlgorithmError for node Z, got %v", err)
	}

	if _, err := ShortestPath(g, "Z", "A"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound for unknown source, got %v", err)
	}
}

// TestShortestPath_EmptyGraph tests the empty snapshot
func TestShortestPath_EmptyGraph(t *testing.T) {
	g := graph.NewBuilder().Build()

	if _, err := ShortestPath(g, "A", "B"); !IsEmptyGraph(err) {
		t.Errorf("Expected ErrEmptyGraph, got %v", err)
	}
	if _, err := SingleSourceDistances(g, "A"); !IsEmptyGraph(err) {
		t.Errorf("Expected ErrEmptyGraph, got %v", err)
	}
}

// TestSingleSourceDistances_Unreached tests the +Inf sentinel
func TestSingleSourceDistances_Unreached(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{undirected("A", "B", 4)})

	dist, err := SingleSourceDistances(g, "A")
	if err != nil {
		t.Fatalf("SingleSourceDistances failed: %v", err)
	}

	if dist["A"] != 0 || dist["B"] != 4 {
		t.Errorf("Expected A=0 B=4, got A=%f B=%f", dist["A"], dist["B"])
	}
	if !math.IsInf(dist["C"], 1) {
		t.Errorf("Expected C unreached (+Inf), got %f", dist["C"])
	}
	if dist.Reachable("C") {
		t.Error("C should not be reachable")
	}
	if !dist.Reachable("B") {
		t.Error("B should be reachable")
	}
}

// TestShortestPath_CostSaturates tests that an overflowing path sum keeps the
// target reachable at math.MaxFloat64
func TestShortestPath_CostSaturates(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{
		undirected("A", "B", 1e308),
		undirected("B", "C", 1e308),
	})

	result, err := ShortestPath(g, "A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}

	if !result.Found {
		t.Fatal("Expected C to be reachable")
	}
	if result.Cost != math.MaxFloat64 {
		t.Errorf("Expected saturated cost, got %g", result.Cost)
	}
	if result.Hops() != 2 {
		t.Errorf("Expected 2 hops, got %d", result.Hops())
	}

	distances, err := SingleSourceDistances(g, "A")
	if err != nil {
		t.Fatalf("SingleSourceDistances failed: %v", err)
	}
	if !distances.Reachable("C") {
		t.Error("Expected C reachable in single-source distances")
	}
}
