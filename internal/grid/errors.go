package grid

import "errors"

var (
	// ErrConfiguration is returned when a cell sequence does not fit the side length.
	ErrConfiguration = errors.New("invalid grid configuration")
	// ErrOutOfRange is returned for coordinates outside [1, side length].
	ErrOutOfRange = errors.New("coordinates out of range")
)
