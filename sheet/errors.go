package sheet

import "errors"

var (
	// ErrNotFound is returned when an id path does not resolve. The sheet is
	// left exactly as it was.
	ErrNotFound = errors.New("not found")

	// ErrIndexOutOfRange is returned by the reorder operations when either
	// index falls outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupportedVersion is returned by Decode for envelopes written by a
	// newer format.
	ErrUnsupportedVersion = errors.New("unsupported sheet version")
)
