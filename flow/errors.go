package flow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedGraph indicates raw input that cannot form a TaskFlow.
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrIllegalState indicates an operation invoked outside its contract,
	// such as serializing a flow that has not passed validation.
	ErrIllegalState = errors.New("illegal state")
)

// Defect names the construction-time problem found in raw input.
type Defect string

const (
	EmptyFlow       Defect = "empty_flow"
	EmptyNodeID     Defect = "empty_node_id"
	EmptyLabel      Defect = "empty_label"
	UnknownNodeType Defect = "unknown_node_type"
	UnknownActor    Defect = "unknown_actor"
	DuplicateNodeID Defect = "duplicate_node_id"
	UnknownSource   Defect = "unknown_source"
	UnknownTarget   Defect = "unknown_target"
)

// MalformedGraphError reports the first defect found while constructing a
// TaskFlow. Index is the position of the offending node or edge in its input
// sequence, or -1 when the defect concerns the flow as a whole.
type MalformedGraphError struct {
	Defect  Defect
	Index   int
	NodeID  string
	Edge    *EdgeRef
	Message string
}

func (e *MalformedGraphError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedGraph, e.Defect, e.Message)
}

func (e *MalformedGraphError) Unwrap() error { return ErrMalformedGraph }

// IllegalStateError signals a caller contract violation.
type IllegalStateError struct {
	Op  string
	Msg string
}

func (e *IllegalStateError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s: %s", ErrIllegalState, e.Op, e.Msg)
}

func (e *IllegalStateError) Unwrap() error { return ErrIllegalState }

// ValidationError is returned by ValidateOrError when a flow has violations.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return fmt.Sprintf("validation failed with %d violation(s):\n  %s", len(e.Violations), strings.Join(msgs, "\n  "))
}
