package sim

import "errors"

var (
	// ErrClockUnavailable is returned by pointer operations when the
	// timestamp source cannot be read.
	ErrClockUnavailable = errors.New("clock unavailable")
	// ErrMissingElement is returned by hosts when a required UI element
	// does not exist.
	ErrMissingElement = errors.New("element not found")
)
