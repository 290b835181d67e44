package charts

import "errors"

var (
	// ErrInvalidDescriptor marks a low-level descriptor that cannot be drawn.
	ErrInvalidDescriptor = errors.New("invalid chart descriptor")
	// ErrInvalidConfig marks a high-level config the chart backend rejects.
	// It is a programmer error and callers propagate it.
	ErrInvalidConfig = errors.New("invalid chart config")
)
