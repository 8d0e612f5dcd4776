package firwin

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

// FrequencySampling designs numTaps taps approximating the piecewise-linear
// gain curve through (freqs[i], gains[i]). freqs are in Hz, must start at 0,
// end at Nyquist and be non-decreasing; a repeated frequency marks a step.
func FrequencySampling(numTaps int, freqs, gains []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	if numTaps <= 0 {
		return nil, ErrTaps
	}

	nyq := sampleRate / 2
	if err := validateBreakpoints(freqs, gains, nyq); err != nil {
		return nil, err
	}
	if numTaps%2 == 0 && gains[len(gains)-1] != 0 {
		return nil, fmt.Errorf("%w: %d taps", ErrNyquistGain, numTaps)
	}

	cfg := applyOptions(opts)

	nfreqs := 1 + nextPowerOf2(numTaps)
	if cfg.gridPoints > nfreqs {
		nfreqs = 1 + nextPowerOf2(cfg.gridPoints-1)
	}
	fftSize := 2 * (nfreqs - 1)

	norm := make([]float64, len(freqs))
	for i, f := range freqs {
		norm[i] = f / nyq
	}

	spectrum := make([]complex128, fftSize)
	delay := float64(numTaps-1) / 2
	for k := range nfreqs {
		x := float64(k) / float64(nfreqs-1)
		g := interp(x, norm, gains)
		spectrum[k] = complex(g, 0) * cmplx.Exp(complex(0, -delay*math.Pi*x))
	}

	// Hermitian extension for a real inverse transform.
	spectrum[0] = complex(real(spectrum[0]), 0)
	spectrum[nfreqs-1] = complex(real(spectrum[nfreqs-1]), 0)
	for k := 1; k < nfreqs-1; k++ {
		spectrum[fftSize-k] = cmplx.Conj(spectrum[k])
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("firwin: failed to create FFT plan: %w", err)
	}

	impulse := make([]complex128, fftSize)
	if err := plan.Inverse(impulse, spectrum); err != nil {
		return nil, fmt.Errorf("firwin: inverse FFT: %w", err)
	}

	h := make([]float64, numTaps)
	for i := range h {
		h[i] = real(impulse[i])
	}

	if err := window.Apply(cfg.window, h); err != nil {
		return nil, err
	}

	return h, nil
}

func validateBreakpoints(freqs, gains []float64, nyq float64) error {
	switch {
	case len(freqs) < 2:
		return fmt.Errorf("%w: need at least two breakpoints", ErrBreakpoints)
	case len(freqs) != len(gains):
		return fmt.Errorf("%w: %d frequencies but %d gains", ErrBreakpoints, len(freqs), len(gains))
	case freqs[0] != 0:
		return fmt.Errorf("%w: first frequency must be 0, got %v", ErrBreakpoints, freqs[0])
	case freqs[len(freqs)-1] != nyq:
		return fmt.Errorf("%w: last frequency must be Nyquist %v, got %v", ErrBreakpoints, nyq, freqs[len(freqs)-1])
	}

	for i := 1; i < len(freqs); i++ {
		if freqs[i] < freqs[i-1] {
			return fmt.Errorf("%w: frequencies must be non-decreasing", ErrBreakpoints)
		}
	}

	return nil
}

// interp is piecewise-linear interpolation of (xp, fp) at x, clamping
// outside the range. At a repeated abscissa the right-hand value wins.
func interp(x float64, xp, fp []float64) float64 {
	if x <= xp[0] {
		return fp[0]
	}
	last := len(xp) - 1
	if x >= xp[last] {
		return fp[last]
	}

	j := sort.Search(len(xp), func(i int) bool { return xp[i] > x }) - 1
	x0, x1 := xp[j], xp[j+1]
	if x1 == x0 {
		return fp[j+1]
	}

	t := (x - x0) / (x1 - x0)

	return fp[j] + t*(fp[j+1]-fp[j])
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
