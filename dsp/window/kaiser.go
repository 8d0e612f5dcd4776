package window

import "math"

// KaiserAttenuation estimates the stopband attenuation (dB) of a Kaiser
// windowed FIR with numTaps taps and a transition width given as a
// fraction of Nyquist.
func KaiserAttenuation(numTaps int, width float64) float64 {
	return 2.285*float64(numTaps-1)*math.Pi*width + 7.95
}

// KaiserBeta returns the Kaiser shape parameter for a target attenuation.
func KaiserBeta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > 50:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB > 21:
		d := attenuationDB - 21
		return 0.5842*math.Pow(d, 0.4) + 0.07886*d
	default:
		return 0
	}
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 evaluates the modified Bessel function of the first kind, order
// zero, by its power series.
func besselI0(x float64) float64 {
	half := x / 2
	term := 1.0
	sum := 1.0
	for k := 1; k < 500; k++ {
		term *= half / float64(k)
		t2 := term * term
		sum += t2
		if t2 < sum*1e-17 {
			break
		}
	}

	return sum
}
