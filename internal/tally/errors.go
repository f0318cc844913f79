package tally

import "errors"

var (
	// ErrMissingColumn is returned when an expected column is absent
	ErrMissingColumn = errors.New("missing column")

	// ErrAmbiguousColumn is returned when more than one column could serve as the same canonical column
	ErrAmbiguousColumn = errors.New("ambiguous column")

	// ErrMalformedSource is returned when a vote column holds a value that is not a non-negative integer
	ErrMalformedSource = errors.New("malformed source")

	// ErrDuplicateKey is returned when a key that must be unique repeats
	ErrDuplicateKey = errors.New("duplicate key")
)
