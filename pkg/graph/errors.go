package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrDuplicateNode  = errors.New("duplicate node")
	ErrDuplicateEdge  = errors.New("duplicate edge")
	ErrDanglingEdge   = errors.New("edge references a missing node")
	ErrInvalidElement = errors.New("invalid element")
)

// GraphError provides structured error information for snapshot construction
// and lookups.
type GraphError struct {
	Op     string // Operation that failed (e.g., "AddEdge", "Lookup")
	Entity string // "node", "edge" or "element"
	ID     string // Entity ID (if known)
	Cause  error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NodeNotFoundError creates a node not found error for the given operation.
func NodeNotFoundError(op, nodeID string) error {
	return &GraphError{Op: op, Entity: "node", ID: nodeID, Cause: ErrNodeNotFound}
}

func duplicateNodeError(nodeID string) error {
	return &GraphError{Op: "AddNode", Entity: "node", ID: nodeID, Cause: ErrDuplicateNode}
}

func duplicateEdgeError(edgeID string) error {
	return &GraphError{Op: "AddEdge", Entity: "edge", ID: edgeID, Cause: ErrDuplicateEdge}
}

func danglingEdgeError(edgeID, missing string) error {
	return &GraphError{
		Op:     "AddEdge",
		Entity: "edge",
		ID:     edgeID,
		Cause:  fmt.Errorf("%w: %q", ErrDanglingEdge, missing),
	}
}

func invalidElementError(op, id string, cause error) error {
	return &GraphError{
		Op:     op,
		Entity: "element",
		ID:     id,
		Cause:  fmt.Errorf("%w: %v", ErrInvalidElement, cause),
	}
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
