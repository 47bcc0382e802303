// Package apperr holds the sentinel errors shared across service layers.
package apperr

import "errors"

var (
	// ErrValidation blocks an action before any mutation or remote call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the referenced record is absent from the mirror.
	ErrNotFound = errors.New("not found")
)
