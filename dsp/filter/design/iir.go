package design

import (
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
)

// bilinearRate is the sample rate used with normalized edges, where 1 is
// Nyquist.
const bilinearRate = 2.0

func synthesizeIIR(s Spec, critical []float64) (*Result, error) {
	family := s.Params.IIRFamily
	if family == "" {
		family = FamilyButterworth
	}

	proto, err := iirStrategies[family].prototype(s.Order, s.Params)
	if err != nil {
		return nil, configError(err)
	}

	warped := make([]float64, len(critical))
	for i, w := range critical {
		warped[i] = zpk.Prewarp(w, bilinearRate)
	}

	var analog zpk.ZPK
	switch s.Mode {
	case ModeLowpass:
		analog = zpk.LowpassToLowpass(proto, warped[0])
	case ModeHighpass:
		analog = zpk.LowpassToHighpass(proto, warped[0])
	case ModeBandpass, ModeBandstop:
		bw := warped[1] - warped[0]
		wo := math.Sqrt(warped[0] * warped[1])
		if s.Mode == ModeBandpass {
			analog = zpk.LowpassToBandpass(proto, wo, bw)
		} else {
			analog = zpk.LowpassToBandstop(proto, wo, bw)
		}
	default:
		return nil, configErrorf("mode %s is not available for IIR filters", s.Mode)
	}

	digital, err := zpk.Bilinear(analog, bilinearRate)
	if err != nil {
		return nil, configError(err)
	}

	sos, err := zpk.ToSections(digital)
	if err != nil {
		return nil, configError(err)
	}
	if r := biquad.MaxPoleRadius(sos); r >= 1 {
		return nil, configErrorf("%s design is unstable (pole radius %g)", family, r)
	}

	b, a := zpk.ToTransferFunction(digital)

	return &Result{
		Spec:     s,
		SOS:      sos,
		TF:       TransferFunction{B: b, A: a},
		Critical: critical,
		ZPK:      &digital,
	}, nil
}
