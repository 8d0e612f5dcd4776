package design

import (
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
)

// Class is the filter family tag shared with the external engine.
type Class string

const (
	ClassIIR       Class = "iir"
	ClassIIRBiquad Class = "iir-biquad"
	ClassFIR       Class = "fir"
	ClassFIRCustom Class = "fir-custom"
)

// IsIIR reports whether the class is executed recursively.
func (c Class) IsIIR() bool { return c == ClassIIR || c == ClassIIRBiquad }

// EngineTag is the family tag the native engine understands; it has no
// separate custom FIR variant.
func (c Class) EngineTag() string {
	if c == ClassFIRCustom {
		return string(ClassFIR)
	}
	return string(c)
}

// ParseClass validates a class tag.
func ParseClass(tag string) (Class, error) {
	c := Class(tag)
	switch c {
	case ClassIIR, ClassIIRBiquad, ClassFIR, ClassFIRCustom:
		return c, nil
	default:
		return "", configErrorf("unknown filter class %q", tag)
	}
}

// Mode is the band shape.
type Mode string

const (
	ModeLowpass  Mode = "lowpass"
	ModeHighpass Mode = "highpass"
	ModeBandpass Mode = "bandpass"
	ModeBandstop Mode = "bandstop"
	ModeCustom   Mode = "custom"
)

// TwoEdges reports whether the mode needs a start and a stop cutoff.
func (m Mode) TwoEdges() bool { return m == ModeBandpass || m == ModeBandstop }

// ParseMode validates a mode tag.
func ParseMode(tag string) (Mode, error) {
	m := Mode(tag)
	switch m {
	case ModeLowpass, ModeHighpass, ModeBandpass, ModeBandstop, ModeCustom:
		return m, nil
	default:
		return "", configErrorf("unknown mode %q", tag)
	}
}

// IIRFamily selects the analog prototype.
type IIRFamily string

const (
	FamilyButterworth IIRFamily = "butter"
	FamilyChebyshev1  IIRFamily = "cheby1"
	FamilyChebyshev2  IIRFamily = "cheby2"
	FamilyElliptic    IIRFamily = "ellip"
	FamilyBessel      IIRFamily = "bessel"
)

// FIRMethod selects the FIR design algorithm.
type FIRMethod string

const (
	MethodWindowedSinc      FIRMethod = "firwin"
	MethodFrequencySampling FIRMethod = "firwin2"
)

// Params carries the family-specific shape parameters. Optional values are
// pointers so that "absent" differs from zero.
type Params struct {
	IIRFamily   IIRFamily
	FIRMethod   FIRMethod
	Ripple      *float64 // passband ripple, dB
	Attenuation *float64 // stopband attenuation, dB
	Window      string   // window tag; empty selects hamming
	BesselNorm  prototype.BesselNorm
	RollOff     *float64 // FIR transition width, Hz
	Breakpoints []float64
	Gains       []float64
}

// Spec is a complete, immutable filter request. StopCutoff is zero when
// absent.
type Spec struct {
	Class       Class
	Mode        Mode
	Order       int
	SampleRate  float64
	StartCutoff float64
	StopCutoff  float64
	Params      Params
}

// Nyquist returns half the sample rate.
func (s Spec) Nyquist() float64 { return core.Nyquist(s.SampleRate) }

// EdgesHz returns the critical frequencies in Hz: the declared
// breakpoints for custom mode, otherwise the start (and stop) cutoff.
func (s Spec) EdgesHz() []float64 {
	switch {
	case s.Mode == ModeCustom:
		return slices.Clone(s.Params.Breakpoints)
	case s.Mode.TwoEdges():
		return []float64{s.StartCutoff, s.StopCutoff}
	default:
		return []float64{s.StartCutoff}
	}
}

// Validate checks the spec invariants and the per-family parameter table.
// Every failure wraps ErrConfiguration.
//
//nolint:cyclop
func (s Spec) Validate() error {
	if _, err := ParseClass(string(s.Class)); err != nil {
		return err
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return err
	}
	if s.Order < 1 {
		return configErrorf("order must be >= 1, got %d", s.Order)
	}
	if !(s.SampleRate > 0) {
		return configErrorf("sampling rate must be > 0, got %g", s.SampleRate)
	}

	if s.Mode == ModeCustom {
		if err := s.validateBreakpoints(); err != nil {
			return err
		}
	} else if err := s.validateCutoffs(); err != nil {
		return err
	}

	if s.Class.IsIIR() {
		return validateIIR(s)
	}

	return validateFIR(s)
}

func (s Spec) validateCutoffs() error {
	nyq := s.Nyquist()
	if !(s.StartCutoff > 0 && s.StartCutoff < nyq) {
		return configErrorf("start cutoff %g Hz must lie in (0, %g)", s.StartCutoff, nyq)
	}

	if !s.Mode.TwoEdges() {
		if s.StopCutoff != 0 {
			return configErrorf("%s takes a single cutoff, got stop cutoff %g Hz", s.Mode, s.StopCutoff)
		}
		return nil
	}

	if s.StopCutoff == 0 {
		return configErrorf("%s requires a stop cutoff", s.Mode)
	}
	if !(s.StopCutoff > s.StartCutoff && s.StopCutoff <= nyq) {
		return configErrorf("stop cutoff %g Hz must lie in (%g, %g]", s.StopCutoff, s.StartCutoff, nyq)
	}

	return nil
}

func (s Spec) validateBreakpoints() error {
	bp := s.Params.Breakpoints
	if len(bp) < 3 {
		return configErrorf("custom mode needs at least 3 breakpoints, got %d", len(bp))
	}

	nyq := s.Nyquist()
	for i, f := range bp {
		if f < 0 || f > nyq {
			return configErrorf("breakpoint %g Hz outside [0, %g]", f, nyq)
		}
		if i > 0 && f <= bp[i-1] {
			return configErrorf("breakpoints must be strictly increasing")
		}
	}

	if g := s.Params.Gains; len(g) != 0 && len(g) != len(bp) {
		return configErrorf("%d gains for %d breakpoints", len(g), len(bp))
	}

	return nil
}
