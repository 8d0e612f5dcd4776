package firwin

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

// WindowedSinc designs numTaps taps whose ideal response alternates between
// pass and stop at each cutoff (Hz). The band containing DC passes when
// WithPassZero(true) is in effect. Taps are scaled for unity gain at the
// centre of the first passband (DC, Nyquist or the band midpoint).
func WindowedSinc(numTaps int, cutoffs []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	if numTaps <= 0 {
		return nil, ErrTaps
	}

	cfg := applyOptions(opts)
	nyq := sampleRate / 2

	edges := make([]float64, 0, len(cutoffs)+2)
	if cfg.passZero {
		edges = append(edges, 0)
	}

	prev := 0.0
	for _, c := range cutoffs {
		f := c / nyq
		if f <= 0 || f >= 1 || f <= prev {
			return nil, fmt.Errorf("%w: %v with Nyquist %v", ErrCutoff, cutoffs, nyq)
		}
		edges = append(edges, f)
		prev = f
	}
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("%w: none given", ErrCutoff)
	}

	passNyquist := (len(cutoffs)%2 == 1) != cfg.passZero
	if passNyquist && numTaps%2 == 0 {
		return nil, fmt.Errorf("%w: %d taps", ErrNyquistGain, numTaps)
	}
	if passNyquist {
		edges = append(edges, 1)
	}

	win := cfg.window
	var winOpts []window.Option
	if cfg.width > 0 {
		atten := window.KaiserAttenuation(numTaps, cfg.width/nyq)
		win = window.TypeKaiser
		winOpts = append(winOpts, window.WithBeta(window.KaiserBeta(atten)))
	}

	alpha := 0.5 * float64(numTaps-1)
	h := make([]float64, numTaps)
	for i := range h {
		m := float64(i) - alpha
		for b := 0; b+1 < len(edges); b += 2 {
			left, right := edges[b], edges[b+1]
			h[i] += right*sinc(right*m) - left*sinc(left*m)
		}
	}

	if err := window.Apply(win, h, winOpts...); err != nil {
		return nil, err
	}

	if !cfg.noScale {
		left, right := edges[0], edges[1]

		var scaleFreq float64
		switch {
		case left == 0:
			scaleFreq = 0
		case right == 1:
			scaleFreq = 1
		default:
			scaleFreq = 0.5 * (left + right)
		}

		var s float64
		for i, v := range h {
			s += v * math.Cos(math.Pi*(float64(i)-alpha)*scaleFreq)
		}
		for i := range h {
			h[i] /= s
		}
	}

	return h, nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
