package repository

import "errors"

// Common repository errors that can be checked with errors.Is()
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when attempting to create an entity that already exists
	ErrDuplicate = errors.New("entity already exists")

	// ErrConstraint is returned when a foreign key rule rejects a write,
	// either a missing referenced row or a delete blocked by dependents
	ErrConstraint = errors.New("constraint violation")

	// ErrNotPersisted is returned when the store reports zero affected rows for a write
	ErrNotPersisted = errors.New("entity not persisted")
)
