// Package analysis runs graph algorithms over a snapshot and reports each run
// as a flat, JSON-serialisable Result with human-readable status lines.
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAlgorithm is returned for an algorithm name the engine does
	// not dispatch.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidRequest is returned when a request lacks a required argument.
	ErrInvalidRequest = errors.New("invalid request")
)

// Algorithm names an engine operation.
type Algorithm string

const (
	ShortestPath    Algorithm = "shortest_path"
	Degree          Algorithm = "degree"
	Closeness       Algorithm = "closeness"
	Betweenness     Algorithm = "betweenness"
	PageRank        Algorithm = "pagerank"
	HITS            Algorithm = "hits"
	Partition       Algorithm = "partition"
	TriangleBalance Algorithm = "triangle_balance"
	Repair          Algorithm = "repair"
	BFS             Algorithm = "bfs"
	DFS             Algorithm = "dfs"
	Properties      Algorithm = "properties"
)

var allAlgorithms = []Algorithm{
	ShortestPath, Degree, Closeness, Betweenness, PageRank, HITS,
	Partition, TriangleBalance, Repair, BFS, DFS, Properties,
}

// Algorithms returns every supported algorithm in display order.
func Algorithms() []Algorithm {
	return append([]Algorithm(nil), allAlgorithms...)
}

// ParseAlgorithm resolves a case-insensitive algorithm name. Hyphens are
// accepted in place of underscores.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// Valid reports whether the engine can run a.
func (a Algorithm) Valid() bool {
	for _, known := range allAlgorithms {
		if a == known {
			return true
		}
	}
	return false
}

// NeedsSource reports whether a requires Request.Source.
func (a Algorithm) NeedsSource() bool {
	return a == ShortestPath || a == BFS || a == DFS
}

// NeedsTarget reports whether a requires Request.Target.
func (a Algorithm) NeedsTarget() bool {
	return a == ShortestPath
}

// Request selects an algorithm and its endpoints.
type Request struct {
	Algorithm Algorithm `json:"algorithm"`
	Source    string    `json:"source,omitempty"`
	Target    string    `json:"target,omitempty"`
}

// Validate checks that the algorithm is known and its endpoints are present.
// Whether the endpoints exist is checked against the snapshot at run time.
func (r Request) Validate() error {
	if !r.Algorithm.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, r.Algorithm)
	}
	if r.Algorithm.NeedsSource() && r.Source == "" {
		return fmt.Errorf("%w: %s requires a source node", ErrInvalidRequest, r.Algorithm)
	}
	if r.Algorithm.NeedsTarget() && r.Target == "" {
		return fmt.Errorf("%w: %s requires a target node", ErrInvalidRequest, r.Algorithm)
	}
	return nil
}
