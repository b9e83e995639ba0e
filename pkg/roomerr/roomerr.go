// Package roomerr classifies failures from the layout pipeline into
// four error kinds, so the external adapter can decide
// how to report a job's outcome without string-matching error messages.
package roomerr

import "errors"

// Kind is one of the four failure classes a pipeline stage can report.
type Kind int

const (
	// InputValidation covers a missing/ill-formed floor plan, a zero-area
	// room, or a filtered catalog none of whose items fit the room in any
	// rotation. Surfaced as status=failed. A catalog that is empty, or that
	// filtering empties, is not an error.
	InputValidation Kind = iota
	// Infeasibility means the solver proved no satisfying assignment
	// exists. Not an error from the caller's perspective: status=completed
	// with an empty layout list.
	Infeasibility
	// Resource means the solver's time budget was exhausted before any
	// feasible solution was found. Same external shape as Infeasibility,
	// plus a "solver timed out" violation entry.
	Resource
	// Internal is a precondition violation in geometry or the solver
	// driver, i.e. a bug. Surfaced as status=failed with the record preserved
	// for diagnosis.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InputValidation:
		return "input_validation"
	case Infeasibility:
		return "infeasibility"
	case Resource:
		return "resource"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind and the operation that
// produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap exposes the underlying error for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error for the given kind, operation, and cause.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind carried by err, or Internal if err does not wrap
// a *roomerr.Error: an unclassified failure is treated as a bug by
// default, never silently downgraded to a recoverable outcome.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is a *roomerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
