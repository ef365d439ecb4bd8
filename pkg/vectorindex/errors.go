package vectorindex

import "errors"

var (
	// ErrEmptyIndex is returned when searching an index with no entries.
	// Callers are expected to check Len before searching; this keeps the
	// failure loud instead of returning garbage positions.
	ErrEmptyIndex = errors.New("vectorindex: index is empty")

	// ErrVectorLengthMismatch is returned when a vector does not match
	// the index dimension.
	ErrVectorLengthMismatch = errors.New("vectorindex: vector length mismatch")

	// ErrNotFound is returned by Load when no index exists at the path.
	ErrNotFound = errors.New("vectorindex: index not found")
)
