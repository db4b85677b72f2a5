package services

import "errors"

var (
	// ErrNotFound marks lookups for entities that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration marks invalid service configuration detected at
	// startup.
	ErrConfiguration = errors.New("invalid configuration")
)
