package service

import (
	"errors"
)

// Sentinel errors for the failure taxonomy. Handlers map these to
// HTTP status codes; services wrap them with context via fmt.Errorf
// and %w so errors.Is still matches.
var (
	// ErrValidation marks malformed or missing input
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks a missing or invalid session
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an authenticated actor lacking permission
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a missing referenced entity
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness or referential violation
	ErrConflict = errors.New("conflict")
)
