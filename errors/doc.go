// Package errors provides structured error types for the wasm-memory library.
//
// Errors are categorized by Phase (which operation failed) and Kind (error
// category). The Kind values mirror the memory error taxonomy: invalid_range,
// allocation, out_of_bounds, and the defensive type_unavailable and
// view_unavailable kinds for released instances and stale views.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
//		Detail("access past end of page %d", page).
//		Value(offset).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidRange(20, 10)
//	err := errors.OutOfBounds(errors.PhaseAccess, offset, length, size)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// so callers can test for a category without matching detail text:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseGrow, Kind: errors.KindOutOfBounds}) {
//		// limit reached, not a bug
//	}
package errors
