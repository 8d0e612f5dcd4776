// Package zpk holds the zero-pole-gain form shared by every IIR design and
// the transforms that take an analog lowpass prototype to a digital filter.
//
// The design chain is prototype -> band transform (analog, rad/s) ->
// [Bilinear] -> [ToSections] and [ToTransferFunction]. Both outputs are
// derived from the same ZPK value so the cascaded and direct forms agree.
package zpk

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrImproper is returned when a system has more zeros than poles and can
// not be mapped through the bilinear transform.
var ErrImproper = errors.New("zpk: more zeros than poles")

// ZPK is a rational transfer function in factored form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i])
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// RelativeDegree returns len(Poles) - len(Zeros).
func (f ZPK) RelativeDegree() int {
	return len(f.Poles) - len(f.Zeros)
}

// Clone returns a deep copy.
func (f ZPK) Clone() ZPK {
	return ZPK{
		Zeros: append([]complex128(nil), f.Zeros...),
		Poles: append([]complex128(nil), f.Poles...),
		Gain:  f.Gain,
	}
}

// Eval returns H at the complex point x.
func (f ZPK) Eval(x complex128) complex128 {
	h := complex(f.Gain, 0)
	for _, z := range f.Zeros {
		h *= x - z
	}
	for _, p := range f.Poles {
		h /= x - p
	}

	return h
}

// DigitalResponse evaluates a digital ZPK on the unit circle at the
// normalized angular frequency w (radians per sample).
func (f ZPK) DigitalResponse(w float64) complex128 {
	return f.Eval(cmplx.Exp(complex(0, w)))
}

// prodNeg returns prod(-r), which is 1 for an empty set.
func prodNeg(r []complex128) complex128 {
	p := complex(1, 0)
	for _, v := range r {
		p *= -v
	}

	return p
}

func scaled(r []complex128, s complex128) []complex128 {
	out := make([]complex128, len(r))
	for i, v := range r {
		out[i] = v * s
	}

	return out
}

func inverted(r []complex128, s complex128) []complex128 {
	out := make([]complex128, len(r))
	for i, v := range r {
		out[i] = s / v
	}

	return out
}

// LowpassToLowpass moves the cutoff of a unit-cutoff prototype to wo rad/s.
func LowpassToLowpass(f ZPK, wo float64) ZPK {
	w := complex(wo, 0)

	return ZPK{
		Zeros: scaled(f.Zeros, w),
		Poles: scaled(f.Poles, w),
		Gain:  f.Gain * math.Pow(wo, float64(f.RelativeDegree())),
	}
}

// LowpassToHighpass maps s -> wo/s. Zeros at the origin are added for the
// relative degree of the prototype.
func LowpassToHighpass(f ZPK, wo float64) ZPK {
	w := complex(wo, 0)
	degree := f.RelativeDegree()

	zeros := inverted(f.Zeros, w)
	zeros = append(zeros, make([]complex128, degree)...)

	return ZPK{
		Zeros: zeros,
		Poles: inverted(f.Poles, w),
		Gain:  f.Gain * real(prodNeg(f.Zeros)/prodNeg(f.Poles)),
	}
}

// bandSplit maps every root r to the pair r +/- sqrt(r^2 - wo^2).
func bandSplit(r []complex128, wo float64) []complex128 {
	w2 := complex(wo*wo, 0)
	out := make([]complex128, 0, 2*len(r))
	for _, v := range r {
		out = append(out, v+cmplx.Sqrt(v*v-w2))
	}
	for _, v := range r {
		out = append(out, v-cmplx.Sqrt(v*v-w2))
	}

	return out
}

// LowpassToBandpass maps s -> (s^2 + wo^2) / (s*bw), centring the passband
// on wo with bandwidth bw (both rad/s). The order doubles.
func LowpassToBandpass(f ZPK, wo, bw float64) ZPK {
	half := complex(bw/2, 0)
	degree := f.RelativeDegree()

	zeros := bandSplit(scaled(f.Zeros, half), wo)
	zeros = append(zeros, make([]complex128, degree)...)

	return ZPK{
		Zeros: zeros,
		Poles: bandSplit(scaled(f.Poles, half), wo),
		Gain:  f.Gain * math.Pow(bw, float64(degree)),
	}
}

// LowpassToBandstop maps s -> (s*bw) / (s^2 + wo^2). Zeros at +/- j*wo are
// added for the relative degree of the prototype.
func LowpassToBandstop(f ZPK, wo, bw float64) ZPK {
	half := complex(bw/2, 0)
	degree := f.RelativeDegree()

	zeros := bandSplit(inverted(f.Zeros, half), wo)
	for range degree {
		zeros = append(zeros, complex(0, wo))
	}
	for range degree {
		zeros = append(zeros, complex(0, -wo))
	}

	return ZPK{
		Zeros: zeros,
		Poles: bandSplit(inverted(f.Poles, half), wo),
		Gain:  f.Gain * real(prodNeg(f.Zeros)/prodNeg(f.Poles)),
	}
}

// Bilinear maps an analog ZPK to the z-plane with s = 2*fs*(z-1)/(z+1).
// Zeros at infinity land on z = -1.
func Bilinear(f ZPK, fs float64) (ZPK, error) {
	degree := f.RelativeDegree()
	if degree < 0 {
		return ZPK{}, ErrImproper
	}

	fs2 := complex(2*fs, 0)
	mapRoot := func(r []complex128) []complex128 {
		out := make([]complex128, len(r))
		for i, v := range r {
			out[i] = (fs2 + v) / (fs2 - v)
		}

		return out
	}

	zeros := mapRoot(f.Zeros)
	for range degree {
		zeros = append(zeros, -1)
	}

	num := complex(1, 0)
	for _, z := range f.Zeros {
		num *= fs2 - z
	}
	den := complex(1, 0)
	for _, p := range f.Poles {
		den *= fs2 - p
	}

	return ZPK{
		Zeros: zeros,
		Poles: mapRoot(f.Poles),
		Gain:  f.Gain * real(num/den),
	}, nil
}

// Prewarp returns the analog frequency (rad/s) that Bilinear with sample
// rate fs maps onto the digital frequency f, given in the units of fs.
// With fs = 2, f is normalized so that 1 is Nyquist.
func Prewarp(f, fs float64) float64 {
	return 2 * fs * math.Tan(math.Pi*f/fs)
}
