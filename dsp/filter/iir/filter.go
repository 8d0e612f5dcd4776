package iir

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrZeroLeadingDenominator is returned when a[0] is zero.
var ErrZeroLeadingDenominator = errors.New("iir: leading denominator coefficient is zero")

// Filter is a transposed direct-form II recursive filter:
//
//	a0*y[n] = b0*x[n] + ... + bM*x[n-M] - a1*y[n-1] - ... - aN*y[n-N]
type Filter struct {
	b, a  []float64
	state []float64
}

// New normalizes b and a by a[0] and pads the shorter slice with zeros.
// An empty denominator is treated as a = [1].
func New(b, a []float64) (*Filter, error) {
	if len(a) == 0 {
		a = []float64{1}
	}
	if a[0] == 0 {
		return nil, ErrZeroLeadingDenominator
	}

	n := max(len(b), len(a))
	nb := make([]float64, n)
	na := make([]float64, n)
	for i, v := range b {
		nb[i] = v / a[0]
	}
	for i, v := range a {
		na[i] = v / a[0]
	}

	return &Filter{
		b:     nb,
		a:     na,
		state: make([]float64, max(n-1, 0)),
	}, nil
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	if len(f.b) == 0 {
		return 0
	}

	if len(f.state) == 0 {
		return f.b[0] * x
	}

	y := f.b[0]*x + f.state[0]

	last := len(f.state) - 1
	for i := range last {
		f.state[i] = f.b[i+1]*x - f.a[i+1]*y + f.state[i+1]
	}
	f.state[last] = f.b[last+1]*x - f.a[last+1]*y

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Filter runs src through a freshly reset delay line and returns a new slice.
func (f *Filter) Filter(src []float64) []float64 {
	f.Reset()

	out := make([]float64, len(src))
	for i, x := range src {
		out[i] = f.ProcessSample(x)
	}

	return out
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	clear(f.state)
}

// Order returns the length of the delay line.
func (f *Filter) Order() int {
	return len(f.state)
}

// Response computes B(e^jw)/A(e^jw) at the given frequency (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var num, den complex128
	for k := range f.b {
		z := cmplx.Exp(complex(0, -w*float64(k)))
		num += complex(f.b[k], 0) * z
		den += complex(f.a[k], 0) * z
	}

	return num / den
}
