package design

import (
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

// param names a family-specific parameter the strategy table can require.
type param string

const (
	paramRipple      param = "ripple"
	paramAttenuation param = "attenuation"
)

// iirStrategy binds an IIR family to its required parameters and its
// analog prototype.
type iirStrategy struct {
	required  []param
	prototype func(order int, p Params) (zpk.ZPK, error)
}

var iirStrategies = map[IIRFamily]iirStrategy{
	FamilyButterworth: {
		prototype: func(order int, _ Params) (zpk.ZPK, error) {
			return prototype.Butterworth(order)
		},
	},
	FamilyChebyshev1: {
		required: []param{paramRipple},
		prototype: func(order int, p Params) (zpk.ZPK, error) {
			return prototype.Chebyshev1(order, *p.Ripple)
		},
	},
	FamilyChebyshev2: {
		required: []param{paramAttenuation},
		prototype: func(order int, p Params) (zpk.ZPK, error) {
			return prototype.Chebyshev2(order, *p.Attenuation)
		},
	},
	FamilyElliptic: {
		required: []param{paramRipple, paramAttenuation},
		prototype: func(order int, p Params) (zpk.ZPK, error) {
			return prototype.Elliptic(order, *p.Ripple, *p.Attenuation)
		},
	},
	FamilyBessel: {
		prototype: func(order int, p Params) (zpk.ZPK, error) {
			return prototype.Bessel(order, p.BesselNorm)
		},
	},
}

// IIRFamilies lists the supported IIR family tags.
func IIRFamilies() []IIRFamily {
	return []IIRFamily{FamilyButterworth, FamilyChebyshev1, FamilyChebyshev2, FamilyElliptic, FamilyBessel}
}

func (p Params) has(name param) bool {
	switch name {
	case paramRipple:
		return p.Ripple != nil
	case paramAttenuation:
		return p.Attenuation != nil
	default:
		return false
	}
}

func validateIIR(s Spec) error {
	if s.Mode == ModeCustom {
		return configErrorf("custom mode is only available for FIR filters")
	}
	if s.Params.FIRMethod == MethodFrequencySampling {
		return configErrorf("method %s applies to FIR filters only", s.Params.FIRMethod)
	}

	if s.Mode.TwoEdges() && s.StopCutoff >= s.Nyquist() {
		return configErrorf("IIR stop cutoff must be below Nyquist %g Hz", s.Nyquist())
	}

	family := s.Params.IIRFamily
	if family == "" {
		family = FamilyButterworth
	}

	strategy, ok := iirStrategies[family]
	if !ok {
		return configErrorf("unknown IIR family %q", s.Params.IIRFamily)
	}

	for _, name := range strategy.required {
		if !s.Params.has(name) {
			return configErrorf("%s filter requires %s", family, name)
		}
	}

	if family == FamilyBessel {
		if _, err := prototype.ParseBesselNorm(string(s.Params.BesselNorm)); err != nil {
			return configError(err)
		}
		if s.Order > prototype.MaxBesselOrder {
			return configErrorf("bessel order %d exceeds %d", s.Order, prototype.MaxBesselOrder)
		}
	}

	return nil
}

func validateFIR(s Spec) error {
	method := s.Params.FIRMethod
	if method == "" {
		method = MethodWindowedSinc
	}

	switch method {
	case MethodWindowedSinc:
		if s.Mode == ModeCustom {
			return configErrorf("custom mode requires method %s", MethodFrequencySampling)
		}
		if s.Params.RollOff != nil && !(*s.Params.RollOff > 0) {
			return configErrorf("roll-off must be > 0 Hz, got %g", *s.Params.RollOff)
		}
	case MethodFrequencySampling:
		if s.Mode != ModeCustom {
			return configErrorf("method %s requires custom mode", MethodFrequencySampling)
		}
	default:
		return configErrorf("unknown FIR method %q", s.Params.FIRMethod)
	}

	if _, err := windowType(s.Params.Window); err != nil {
		return err
	}

	return nil
}

func windowType(tag string) (window.Type, error) {
	if tag == "" {
		return window.TypeHamming, nil
	}

	t, err := window.Parse(tag)
	if err != nil {
		return 0, configError(err)
	}

	return t, nil
}
