package errs

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced record does not exist.
// It is surfaced immediately and never retried.
type NotFoundError struct {
	// Table is the table that was searched.
	Table string
	// ID is the identifier that produced no match.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %q", e.Table, e.ID)
}

// NotFound builds a NotFoundError for the given table and id.
func NotFound(table, id string) *NotFoundError {
	return &NotFoundError{Table: table, ID: id}
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ValidationError reports input that fails before any write happens:
// a missing required field, or a raw value rejected by a sport's schema.
type ValidationError struct {
	// Entity is the entity kind being validated (e.g. "event", "score").
	Entity string
	// Field is the offending field, when one can be named.
	Field string
	// Reason describes why the value was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IntegrityError reports a write that would violate a uniqueness invariant,
// carrying the conflicting key and value so callers can diagnose the clash.
type IntegrityError struct {
	// Table is the table whose invariant was violated.
	Table string
	// Key names the unique key or column set (e.g. "name",
	// "foreign_storage_id,foreign_id").
	Key string
	// Value is the conflicting value.
	Value any
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: duplicate %s %v", e.Table, e.Key, e.Value)
}

// Conflict builds an IntegrityError.
func Conflict(table, key string, value any) *IntegrityError {
	return &IntegrityError{Table: table, Key: key, Value: value}
}

// IsIntegrity reports whether err (or anything it wraps) is an IntegrityError.
func IsIntegrity(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target)
}

// HTTPStatus maps the taxonomy to response codes: 404 for missing records,
// 400 for rejected input, 409 for uniqueness conflicts, 500 otherwise.
func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return 404
	case IsValidation(err):
		return 400
	case IsIntegrity(err):
		return 409
	default:
		return 500
	}
}
