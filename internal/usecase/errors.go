package usecase

import "errors"

// Sentinels every service wraps with %w. The HTTP layer maps each one to a status
// and a reason code, so callers match with errors.Is rather than on text.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("store unavailable")
)
