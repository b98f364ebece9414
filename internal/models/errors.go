package models

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	// (e.g. a favorite with the same title and URL)
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidCategory is returned when a category value is not one of
	// the supported categories
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidUUID is returned when an id is not a valid UUID
	ErrInvalidUUID = errors.New("invalid UUID")
)
