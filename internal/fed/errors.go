package fed

import "errors"

var (
	// ErrInvalidPath is returned when rooms and transition times do not describe a path.
	ErrInvalidPath = errors.New("invalid combination of rooms and transition_times")
	// ErrRoomNotFound is returned for a room the store does not know.
	ErrRoomNotFound = errors.New("room not found")
	// ErrOutOfRange is returned in strict mode for a boundary outside a room's series.
	ErrOutOfRange = errors.New("boundary time outside observed range")
	// ErrUnorderedSeries is returned when a series is not strictly increasing in time.
	ErrUnorderedSeries = errors.New("samples not strictly increasing in time")
)
