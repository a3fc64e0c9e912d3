package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown category or storage backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// Search Errors.

	// ErrTransport indicates the search backend could not be reached
	// or answered with a failure status.
	ErrTransport = errors.New("search backend unavailable")

	// ErrMalformedResponse indicates the backend answered with a body
	// that does not have the expected shape (e.g. missing data).
	ErrMalformedResponse = errors.New("malformed search response")

	// ErrSearchUnavailable indicates no search service is configured.
	ErrSearchUnavailable = errors.New("search service unavailable")

	// Storage Errors.

	// ErrStorageUnavailable indicates client-local storage cannot be used.
	// Recent searches fall back to memory for the session.
	ErrStorageUnavailable = errors.New("local storage unavailable")
)
