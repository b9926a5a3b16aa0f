package domain

import "errors"

var (
	// ErrMissingSingleton is returned when an entity expected to be unique
	// (e.g. the component of group Sides) is absent or duplicated.
	ErrMissingSingleton = errors.New("missing or duplicated singleton")

	// ErrMalformedClashKey is returned when clash ingredients cannot be
	// rendered into a deterministic grouping key.
	ErrMalformedClashKey = errors.New("malformed clash key")

	ErrNotFound = errors.New("not found")
)
