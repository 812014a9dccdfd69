// Package cmderr is the typed error taxonomy the command surface switches
// on, instead of matching ad hoc strings.
package cmderr

import (
	"errors"
	"fmt"
)

// Kind classifies a core operation failure.
type Kind int

const (
	// NotFound: a referenced WindowId/WorkspaceId/VirtualOutputId does not
	// exist.
	NotFound Kind = iota
	// InvalidArgument: direction/mode out of range, malformed command.
	InvalidArgument
	// InvariantViolation: an internal bug (empty active child,
	// fullscreen-inside-fullscreen, orphaned leaf). Never surfaced to
	// clients; the mutation is aborted and a diagnostic event is emitted.
	InvariantViolation
	// NoOp: structurally valid but nothing to do (e.g. a directional move
	// with no neighbor). Surfaces as success with false, not an error.
	NoOp
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case InvariantViolation:
		return "invariant_violation"
	case NoOp:
		return "no_op"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind the command surface can
// dispatch on without string matching.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given kind, operation name, and wrapped
// cause (which may be nil).
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err (or anything it wraps) is a *Error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
