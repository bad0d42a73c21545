package provider

import "errors"

// Sentinel errors for registry operations.
var (
	ErrNotRegistered = errors.New("provider not registered")
	ErrEmptyName     = errors.New("provider name cannot be empty")
	ErrAlreadyExists = errors.New("provider already registered")
)
