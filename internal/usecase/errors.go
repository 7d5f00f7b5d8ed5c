package usecase

import "errors"

// Sentinels shared by services and adapters. Wrap them with fmt.Errorf("%w")
// to add detail; the HTTP layer maps each one to a status code.
var (
	// ErrInvalidInput rejects a request before any upstream call is made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound covers unknown users and unpublished games.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized means the identity service rejected the access token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable means an upstream failed with no usable fallback.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrPreferencesRequired means the user exists but has not picked both favorites.
	ErrPreferencesRequired = errors.New("favorite teams are not selected")
)
