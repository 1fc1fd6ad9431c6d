package domain

import "errors"

var (
	// ErrUnknownUnit is returned when a size unit is not one of the supported units
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrInvalidItem is returned when an item fails form validation
	ErrInvalidItem = errors.New("invalid item")

	// ErrNotEnoughItems is returned when a comparison is requested with fewer than two items
	ErrNotEnoughItems = errors.New("not enough items to compare")

	// ErrTooManyItems is returned when a session already holds the maximum number of items
	ErrTooManyItems = errors.New("too many items in session")

	// ErrSessionNotFound is returned when a session does not exist or has expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ValidationError describes the first form field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrInvalidItem
func (e *ValidationError) Unwrap() error {
	return ErrInvalidItem
}
