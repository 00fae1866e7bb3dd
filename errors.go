package facet

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a Get matched no row.
	ErrNotFound = errors.New("facet: row not found")

	// ErrNotSupportedOnJoin is returned when a mutation is attempted on
	// a join context. A join chain has no single target table to mutate.
	ErrNotSupportedOnJoin = errors.New("facet: operation not supported on a join")

	// ErrUnfilteredMutation is returned when an update or delete is
	// attempted with an empty predicate tree. Deleting or updating a
	// whole table must go through Truncate or an explicit filter.
	ErrUnfilteredMutation = errors.New("facet: unfiltered update or delete")
)

// NotFoundError represents an error when a single-row read matched
// nothing.
type NotFoundError struct {
	table string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("facet: %s: row not found", e.table)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table the read targeted.
func (e *NotFoundError) Table() string {
	return e.table
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSupportedOnJoinError represents a mutation attempted on a join
// context.
type NotSupportedOnJoinError struct {
	op string
}

// Error returns the error string.
func (e *NotSupportedOnJoinError) Error() string {
	return fmt.Sprintf("facet: %s not supported on a join", e.op)
}

// Is reports whether the target error matches NotSupportedOnJoinError.
func (e *NotSupportedOnJoinError) Is(err error) bool {
	return err == ErrNotSupportedOnJoin
}

// Op returns the refused operation name.
func (e *NotSupportedOnJoinError) Op() string {
	return e.op
}

// NewNotSupportedOnJoinError returns a new NotSupportedOnJoinError for
// the refused operation.
func NewNotSupportedOnJoinError(op string) *NotSupportedOnJoinError {
	return &NotSupportedOnJoinError{op: op}
}

// IsNotSupportedOnJoin returns true if the error is a
// NotSupportedOnJoinError.
func IsNotSupportedOnJoin(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSupportedOnJoinError
	return errors.As(err, &e) || errors.Is(err, ErrNotSupportedOnJoin)
}
