package domain

import "errors"

var (
	// ErrNotFound is wrapped by store lookups that match no row.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when a short id prefix matches several plans.
	ErrAmbiguousID = errors.New("ambiguous id")
)
