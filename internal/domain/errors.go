package domain

import "errors"

var (
	// ErrNotFound is returned when the referenced task list does not exist.
	ErrNotFound = errors.New("task list not found")
	// ErrForbidden is returned when the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidShareMode is returned when a payload carries an unknown share mode.
	ErrInvalidShareMode = errors.New("invalid share mode")
	// ErrNotShared is returned when joining a list whose share mode is none.
	ErrNotShared = errors.New("task list is not shared")
)
