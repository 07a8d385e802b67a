// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across generator/service/transport layers.
var (
	// ErrInvalidConfig indicates a generation request that can never succeed as given.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrEmptyPool indicates that the selected categories produced no characters.
	// It never leaves the generator on its own; callers see it wrapped in a *ConfigError.
	ErrEmptyPool = errors.New("empty character pool")

	// ErrUnauthorized indicates a missing or invalid session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the client exceeded its request budget.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
