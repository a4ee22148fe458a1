package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a missing product, user or order.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a write rejected by a uniqueness or stock rule.
	ErrConflict = errors.New("conflict")
	// ErrValidation reports a malformed request.
	ErrValidation = errors.New("validation failed")
	// ErrUpstream reports a failed call to an external system.
	ErrUpstream = errors.New("upstream failure")
)

// Validationf wraps ErrValidation with a client-facing reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with the missing entity.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with the violated rule.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
