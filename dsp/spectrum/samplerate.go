package spectrum

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrTimeAxis is returned when a time axis cannot yield a sample rate.
var ErrTimeAxis = errors.New("spectrum: time axis needs at least 2 strictly increasing points")

// EstimateSampleRate returns 1 / mean(diff(t)) for a time axis given in
// milliseconds.
func EstimateSampleRate(timesMs []float64) (float64, error) {
	if len(timesMs) < 2 {
		return 0, ErrTimeAxis
	}

	steps := make([]float64, len(timesMs)-1)
	for i := range steps {
		steps[i] = (timesMs[i+1] - timesMs[i]) / 1000
	}

	mean := stat.Mean(steps, nil)
	if !(mean > 0) || math.IsInf(mean, 0) {
		return 0, ErrTimeAxis
	}

	return 1 / mean, nil
}
