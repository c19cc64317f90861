package storage

import "errors"

var (
	// ErrNotFound indicates the target row does not exist, or exists under a
	// different owner where scoping applies.
	ErrNotFound = errors.New("record not found")

	// ErrConstraint indicates a storage-level uniqueness or foreign-key
	// violation, e.g. a duplicate email or phone number.
	ErrConstraint = errors.New("constraint violation")
)
