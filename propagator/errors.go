package propagator

import "errors"

// Precondition errors. The hot loops run unchecked; everything below is
// validated once, before stepping begins.
var (
	// ErrBadExtent reports a buffer whose length does not match the padded
	// grid, or non-positive grid dimensions.
	ErrBadExtent = errors.New("propagator: buffer extent does not match padded grid")

	// ErrBadInterior reports an interior rectangle that does not fit inside
	// the padded grid with a full halo on every side.
	ErrBadInterior = errors.New("propagator: interior does not fit inside padded grid")

	// ErrNonPositiveDX reports a zero or negative spatial sample interval.
	ErrNonPositiveDX = errors.New("propagator: dx must be positive")

	// ErrSourceOutOfRange reports a source whose halo-offset coordinates fall
	// outside the padded grid.
	ErrSourceOutOfRange = errors.New("propagator: source coordinate outside padded grid")

	// ErrShortSource reports a source time series shorter than the requested
	// number of steps.
	ErrShortSource = errors.New("propagator: source series shorter than step count")

	// ErrNegativeSteps reports a negative step count.
	ErrNegativeSteps = errors.New("propagator: step count must not be negative")

	// ErrUnknownKernel reports an unrecognized kernel name.
	ErrUnknownKernel = errors.New("propagator: unknown kernel")
)
