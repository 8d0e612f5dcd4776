package fir

import (
	"math"
	"math/cmplx"
)

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
type Filter struct {
	taps  []float64
	delay []float64
	pos   int
}

// New creates a FIR filter from the given taps. The taps are copied.
func New(taps []float64) *Filter {
	return &Filter{
		taps:  append([]float64(nil), taps...),
		delay: make([]float64, len(taps)),
	}
}

// ProcessSample filters one input sample:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.taps)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x

	var y float64
	p := f.pos
	for _, h := range f.taps {
		y += h * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}

	f.pos++
	if f.pos == n {
		f.pos = 0
	}

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Filter convolves src with the taps from zero initial state and returns
// the first len(src) outputs (lfilter with a = [1]). The streaming delay
// line is not touched.
func (f *Filter) Filter(src []float64) []float64 {
	out := make([]float64, len(src))
	for n := range out {
		var y float64
		for k, h := range f.taps[:min(len(f.taps), n+1)] {
			y += h * src[n-k]
		}
		out[n] = y
	}

	return out
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns the filter order (len(taps) - 1).
func (f *Filter) Order() int {
	return len(f.taps) - 1
}

// Taps returns a copy of the filter taps.
func (f *Filter) Taps() []float64 {
	return append([]float64(nil), f.taps...)
}

// Response computes H(e^{jw}) at the given frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var h complex128
	for k, c := range f.taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return h
}
