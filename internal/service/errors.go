package service

import "errors"

// Failure kinds surfaced by the services. Callers classify with errors.Is.
var (
	// ErrUnauthenticated means no caller identity could be resolved
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidInput means the request body is missing or has the wrong shape
	ErrInvalidInput = errors.New("invalid input")
	// ErrProviderUnavailable covers network and provider-level generation failures
	ErrProviderUnavailable = errors.New("generation provider unavailable")
	// ErrMalformedGenerationResponse means the provider replied with content that could not be normalized
	ErrMalformedGenerationResponse = errors.New("malformed generation response")
	// ErrPersistenceFailure wraps a failed row write
	ErrPersistenceFailure = errors.New("persistence failure")

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidToken       = errors.New("invalid token")
)
