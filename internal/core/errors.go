package core

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the core, per spec.md §7.
var (
	// ErrUnknownPrefix is the error kind the term reconciler reports when a
	// label uses a prefix bound neither by defaults, user JSON, nor any
	// reference file. The reconciler returns a *term.ErrUnknownPrefix
	// carrying the prefix, which matches this value under errors.Is.
	ErrUnknownPrefix = errors.New("unknown prefix")

	// ErrCycleInRankSubgraph is returned by the tree decomposer when, after
	// self-loop removal, a weakly connected component of the rank subgraph
	// has no zero-in-degree node (a cycle with no entry point) and so
	// cannot be resolved into a tree forest.
	ErrCycleInRankSubgraph = errors.New("cycle in rank subgraph")
)

// MissingRequiredLayoutKeyError names a node that lacks a layout key (e.g.
// ReservedX) from the grid-allocation or draw-position pass. layout.Layout
// runs both passes itself and does not return this error.
type MissingRequiredLayoutKeyError struct {
	Key    string
	NodeID NodeID
}

func (e *MissingRequiredLayoutKeyError) Error() string {
	return fmt.Sprintf("layout: node %d missing required key %q", e.NodeID, e.Key)
}

// StructuralSubError is one offending element of a StructuralDiagramError.
type StructuralSubError struct {
	Kind      string // e.g. "disconnected-term", "no-endpoints", "blank-label"
	ElementID string
}

func (e StructuralSubError) Error() string {
	return fmt.Sprintf("%s: element %s", e.Kind, e.ElementID)
}

// StructuralDiagramError aggregates diagram-validation failures: disconnected
// terms, arrows with no endpoints, blank term/edge labels, missing
// parent/child attachments on an edge cell. No stage of this module runs
// diagram validation, so nothing here constructs this error.
type StructuralDiagramError struct {
	Sub []StructuralSubError
}

func (e *StructuralDiagramError) Error() string {
	if len(e.Sub) == 1 {
		return fmt.Sprintf("structural diagram error: %s", e.Sub[0])
	}
	return fmt.Sprintf("structural diagram error: %d issues, first: %s", len(e.Sub), e.Sub[0])
}

// Unwrap exposes the sub-errors to errors.Is/errors.As via errors.Join
// semantics.
func (e *StructuralDiagramError) Unwrap() []error {
	out := make([]error, len(e.Sub))
	for i, s := range e.Sub {
		out[i] = s
	}
	return out
}
