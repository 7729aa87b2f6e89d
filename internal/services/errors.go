package services

import "errors"

// Error taxonomy for the access and sharing contract. Handlers map
// these to HTTP codes; anything else from a repository is a store
// failure (500).
var (
	ErrAccessDenied  = errors.New("access denied")
	ErrNotFound      = errors.New("not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyShared = errors.New("already shared")
	ErrSelfShare     = errors.New("cannot share a task with yourself")
	ErrConflict      = errors.New("conflict")
	ErrValidation    = errors.New("validation failed")
)
