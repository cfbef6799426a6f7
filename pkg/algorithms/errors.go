package algorithms

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// Common sentinel errors
var (
	// ErrNodeNotFound is returned when a referenced node is absent from the
	// snapshot. It is the same value as graph.ErrNodeNotFound.
	ErrNodeNotFound = graph.ErrNodeNotFound

	// ErrEmptyGraph is returned by every algorithm for a snapshot with no nodes.
	ErrEmptyGraph = errors.New("graph has no nodes")
)

// AlgorithmError provides structured error information for a failed run.
type AlgorithmError struct {
	Op     string // Algorithm that failed (e.g., "ShortestPath")
	NodeID string // Offending node (if applicable)
	Cause  error
}

// Error implements the error interface.
func (e *AlgorithmError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s: node %q: %v", e.Op, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AlgorithmError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *AlgorithmError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func emptyGraphError(op string) error {
	return &AlgorithmError{Op: op, Cause: ErrEmptyGraph}
}

func nodeNotFoundError(op, nodeID string) error {
	return &AlgorithmError{Op: op, NodeID: nodeID, Cause: ErrNodeNotFound}
}

// requireNodes fails with ErrEmptyGraph for a nil or empty snapshot.
func requireNodes(op string, g *graph.Snapshot) error {
	if g.IsEmpty() {
		return emptyGraphError(op)
	}
	return nil
}

// IsEmptyGraph returns true if the error reports an empty snapshot.
func IsEmptyGraph(err error) bool {
	return errors.Is(err, ErrEmptyGraph)
}
