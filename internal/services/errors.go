package services

import "errors"

// Failure taxonomy for the core components. Handlers translate these into
// HTTP statuses at the boundary with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrMismatch     = errors.New("code mismatch")
	ErrDependency   = errors.New("dependency failure")
)
