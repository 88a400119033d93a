// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/client layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication (bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnauthenticated indicates a write attempted without a signed-in user.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidEmail indicates a syntactically invalid email address.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrWeakPassword indicates a password below the minimum length.
	ErrWeakPassword = errors.New("weak password")

	// ErrQuotaExceeded indicates the AI provider rejected a call for quota/rate reasons.
	ErrQuotaExceeded = errors.New("ai quota exceeded")

	// ErrInvalidImport indicates an AI answer that does not match the import schema.
	ErrInvalidImport = errors.New("invalid import result")
)

// ErrInvalidArgument indicates a request missing a required field.
var ErrInvalidArgument = errors.New("invalid argument")
