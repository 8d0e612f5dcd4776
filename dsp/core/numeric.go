package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, using an
// absolute test first and a relative test for large magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / 2
}

// NormalizeFrequency maps freqHz onto the (0, 1] range where 1 is Nyquist.
func NormalizeFrequency(freqHz, sampleRate float64) float64 {
	return freqHz / Nyquist(sampleRate)
}

// NormalizeFrequencies applies NormalizeFrequency to every entry.
func NormalizeFrequencies(freqsHz []float64, sampleRate float64) []float64 {
	out := make([]float64, len(freqsHz))
	for i, f := range freqsHz {
		out[i] = NormalizeFrequency(f, sampleRate)
	}

	return out
}
