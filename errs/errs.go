// Package errs defines the error taxonomy shared by every core component,
// per the error handling design: InputError, ConsistencyError,
// Unsupported, Cancelled, and Internal. Components never swallow these —
// they propagate to the caller, who decides how to react (retry, surface,
// discard the store).
package errs

import (
	"errors"
	"fmt"
)

// Kind tags the category of a core error.
type Kind string

const (
	// InputError marks a malformed triple, unknown term shape, or bad
	// JSON-LD context. Never retried by the core.
	InputError Kind = "InputError"
	// ConsistencyError marks a reasoner-proved inconsistency. Further
	// reasoning calls on the same graph return this error until the
	// offending triple is removed.
	ConsistencyError Kind = "ConsistencyError"
	// Unsupported marks a feature outside the implemented fragment
	// (e.g. SPARQL property paths). Not fatal.
	Unsupported Kind = "Unsupported"
	// Cancelled marks a tripped caller deadline. Partial results may be
	// readable from the store.
	Cancelled Kind = "Cancelled"
	// Internal marks an invariant violation (e.g. index corruption).
	// Fatal: the store is considered poisoned and should be discarded.
	Internal Kind = "Internal"
)

// Error is the core's single error type. It satisfies the standard error
// interface and supports errors.Is/As through Unwrap and a Kind-based Is.
type Error struct {
	Kind Kind
	// Msg is a human-readable description.
	Msg string
	// Premises names the triple ids a ConsistencyError's clash traces
	// back to, for audit purposes. Empty for other kinds.
	Premises []uint64
	// Invariant names the violated invariant for an Internal error.
	Invariant string
	// Err optionally wraps an underlying cause.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ConsistencyError:
		return fmt.Sprintf("%s: %s (premises=%v)", e.Kind, e.Msg, e.Premises)
	case Internal:
		return fmt.Sprintf("%s: %s (invariant=%s)", e.Kind, e.Msg, e.Invariant)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, enabling
// errors.Is(err, errs.New(errs.Cancelled, "")) style checks against a
// bare sentinel built from a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Msg == "" && t.Err == nil && len(t.Premises) == 0 && t.Invariant == "" {
		return e.Kind == t.Kind
	}
	return e == t
}

// New constructs an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf constructs an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind wrapping an underlying
// cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Consistency constructs a ConsistencyError carrying the clash's premise
// triple ids for audit traceability.
func Consistency(msg string, premises []uint64) *Error {
	return &Error{Kind: ConsistencyError, Msg: msg, Premises: premises}
}

// InternalViolation constructs an Internal error naming the violated
// invariant.
func InternalViolation(invariant, msg string) *Error {
	return &Error{Kind: Internal, Msg: msg, Invariant: invariant}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and ok
// is false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
