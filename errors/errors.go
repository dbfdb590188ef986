package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation the error occurred in
type Phase string

const (
	PhaseLimit    Phase = "limit"    // limits construction
	PhaseCreate   Phase = "create"   // instance creation
	PhaseAccess   Phase = "access"   // data reads and writes
	PhaseGrow     Phase = "grow"     // page growth
	PhaseType     Phase = "type"     // type introspection
	PhaseRegistry Phase = "registry" // host registry operations
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidRange    Kind = "invalid_range"
	KindAllocation      Kind = "allocation"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindTypeUnavailable Kind = "type_unavailable"
	KindViewUnavailable Kind = "view_unavailable"
	KindNotFound        Kind = "not_found"
	KindRegistration    Kind = "registration"
	KindClosed          Kind = "closed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidRange creates a limits range error
func InvalidRange(min, max uint32) *Error {
	return &Error{
		Phase:  PhaseLimit,
		Kind:   KindInvalidRange,
		Detail: fmt.Sprintf("min pages %d exceeds max pages %d", min, max),
		Value:  min,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, pages uint64, bytes uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d pages (%d bytes)", pages, bytes),
		Value:  pages,
	}
}

// OutOfBounds creates an out of bounds access error
func OutOfBounds(phase Phase, offset, length uint32, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("access [%d, %d) exceeds memory size %d", offset, uint64(offset)+uint64(length), size),
		Value:  offset,
	}
}

// GrowOutOfBounds creates an error for growth beyond the limit maximum
func GrowOutOfBounds(current, delta, max uint32) *Error {
	return &Error{
		Phase:  PhaseGrow,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("grow %d pages from %d exceeds max %d", delta, current, max),
		Value:  delta,
	}
}

// TypeUnavailable creates a defensive error for released or corrupted instances
func TypeUnavailable() *Error {
	return &Error{
		Phase:  PhaseType,
		Kind:   KindTypeUnavailable,
		Detail: "memory instance released",
	}
}

// ViewUnavailable creates an error for buffers that can no longer be referenced
func ViewUnavailable(detail string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindViewUnavailable,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(what string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s with handle %d not found", what, handle),
		Value:  handle,
	}
}

// Registration creates a registry registration error
func Registration(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindRegistration,
		Detail: detail,
		Cause:  cause,
	}
}

// Closed creates an error for operations on a closed registry
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s closed", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
