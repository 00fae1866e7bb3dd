package sql

import (
	"errors"
	"fmt"
)

// Standard sentinel errors raised at query-build time. Everything the
// clause builders can fail on is reported synchronously, before a
// statement ever reaches the execution layer.
var (
	// ErrMissingJoinKey is returned when a join call omits one of its
	// two join-key descriptors.
	ErrMissingJoinKey = errors.New("sql: missing join key")

	// ErrInvalidCondition is returned by a strict predicate builder
	// when a condition call omits its column or a required value.
	ErrInvalidCondition = errors.New("sql: invalid condition")
)

// MissingJoinKeyError reports which side of which join call omitted
// its key descriptor.
type MissingJoinKeyError struct {
	Table string // right table of the failed join call
	Side  string // "left" or "right"
}

// Error returns the error string.
func (e *MissingJoinKeyError) Error() string {
	return fmt.Sprintf("sql: join %s: missing %s join key", e.Table, e.Side)
}

// Is reports whether the target error matches MissingJoinKeyError.
func (e *MissingJoinKeyError) Is(err error) bool {
	return err == ErrMissingJoinKey
}

// IsMissingJoinKey returns true if the error is a MissingJoinKeyError.
func IsMissingJoinKey(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingJoinKeyError
	return errors.As(err, &e) || errors.Is(err, ErrMissingJoinKey)
}

// ConditionError is recorded by a strict Where builder when a
// condition call is missing its column or a required value.
type ConditionError struct {
	Column string
	Op     Op
}

// Error returns the error string.
func (e *ConditionError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("sql: condition %s: missing column", e.Op)
	}
	return fmt.Sprintf("sql: condition %s on %s: missing value", e.Op, e.Column)
}

// Is reports whether the target error matches ConditionError.
func (e *ConditionError) Is(err error) bool {
	return err == ErrInvalidCondition
}

// IsInvalidCondition returns true if the error is a ConditionError.
func IsInvalidCondition(err error) bool {
	if err == nil {
		return false
	}
	var e *ConditionError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidCondition)
}
