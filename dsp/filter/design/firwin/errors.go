package firwin

import "errors"

var (
	// ErrTaps is returned for a non-positive tap count.
	ErrTaps = errors.New("firwin: number of taps must be positive")
	// ErrCutoff is returned for band edges outside (0, Nyquist) or not
	// strictly increasing.
	ErrCutoff = errors.New("firwin: invalid cutoff frequencies")
	// ErrNyquistGain is returned when an even tap count is asked to pass
	// Nyquist; such filters have a forced zero there.
	ErrNyquistGain = errors.New("firwin: even tap count requires zero gain at Nyquist")
	// ErrBreakpoints is returned for malformed frequency/gain breakpoints.
	ErrBreakpoints = errors.New("firwin: invalid frequency breakpoints")
)
