package usecase

import "errors"

// Sentinel errors the HTTP layer maps onto response statuses. Services wrap
// them with fmt.Errorf and %w to add context.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
