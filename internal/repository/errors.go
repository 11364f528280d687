package repository

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all repository implementations. Services switch
// on these to pick fallback, swallow, or surface behavior.
var (
	// ErrNotFound means the live source answered but has no matching row.
	ErrNotFound = errors.New("entity not found")

	// ErrUnavailable means the live source could not be reached or answered
	// with a transport-level failure.
	ErrUnavailable = errors.New("live data source unavailable")

	// ErrConflict means an insert violated a uniqueness constraint.
	ErrConflict = errors.New("uniqueness constraint violated")
)

// NotFound wraps ErrNotFound with entity context.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// Unavailable wraps ErrUnavailable with the underlying cause.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, cause)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err is or wraps ErrUnavailable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
