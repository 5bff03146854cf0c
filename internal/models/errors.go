package models

import "errors"

// Sentinel errors returned by repositories and services. Handlers map them
// to HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when an entity cannot be found by slug or ID.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned on unique-constraint violations (slug, username, email).
	ErrConflict = errors.New("resource already exists")
	// ErrInvalidInput is returned on semantic validation failures
	// (unknown enum value, out-of-range value, missing parent).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when credentials or tokens are rejected.
	ErrUnauthorized = errors.New("unauthorized")
)
