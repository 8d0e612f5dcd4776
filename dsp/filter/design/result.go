package design

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/iir"
)

// TransferFunction holds direct-form polynomials in powers of z^-1.
type TransferFunction struct {
	B []float64
	A []float64
}

// Result is a designed filter.
type Result struct {
	Spec Spec

	// SOS is nil for FIR designs.
	SOS []biquad.Coefficients
	TF  TransferFunction

	// Critical holds the edges normalized to Nyquist, CriticalHz the same
	// edges in Hz.
	Critical   []float64
	CriticalHz []float64

	// ZPK is the digital zero-pole-gain form of IIR designs.
	ZPK *zpk.ZPK
}

// NumTaps returns the number of FIR taps, or 0 for IIR designs.
func (r *Result) NumTaps() int {
	if r.Spec.Class.IsIIR() {
		return 0
	}

	return len(r.TF.B)
}

// Apply filters x the way the spec's class prescribes: cascaded sections
// for iir-biquad, direct form for iir, convolution with the taps for FIR
// classes. x is not modified.
func (r *Result) Apply(x []float64) ([]float64, error) {
	switch r.Spec.Class {
	case ClassIIRBiquad:
		return r.ApplySections(x), nil
	case ClassIIR:
		return r.ApplyDirect(x)
	case ClassFIR, ClassFIRCustom:
		return fir.New(r.TF.B).Filter(x), nil
	default:
		return nil, configErrorf("unknown filter class %q", r.Spec.Class)
	}
}

// ApplySections runs x through the second-order-section cascade.
func (r *Result) ApplySections(x []float64) []float64 {
	return biquad.NewChain(r.SOS).Filter(x)
}

// ApplyDirect runs x through the direct-form transfer function.
func (r *Result) ApplyDirect(x []float64) ([]float64, error) {
	f, err := iir.New(r.TF.B, r.TF.A)
	if err != nil {
		return nil, fmt.Errorf("design: direct form: %w", err)
	}

	return f.Filter(x), nil
}
