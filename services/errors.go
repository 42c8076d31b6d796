// Package services holds the business logic behind the HTTP handlers. Every
// service takes its storage dependencies through its constructor; there is no
// package-level state.
package services

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateDay = errors.New("a special for that day already exists")
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("storage failure")
)
