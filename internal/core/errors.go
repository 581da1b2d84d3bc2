package core

import "errors"

var (
	// ErrInvalidDimension is returned when a grid is requested with a size
	// that is not a positive integer.
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrIndexOutOfBounds is returned by accessors given coordinates outside
	// the grid.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrDimensionMismatch is returned when two grids that must share a size
	// do not.
	ErrDimensionMismatch = errors.New("grid dimension mismatch")
	// ErrAliasedBuffers is returned when a step is asked to write into the
	// grid it reads from.
	ErrAliasedBuffers = errors.New("destination aliases source grid")
	// ErrInvalidCommand marks a controller command issued in a state that
	// does not accept it.
	ErrInvalidCommand = errors.New("invalid command for current state")
)
