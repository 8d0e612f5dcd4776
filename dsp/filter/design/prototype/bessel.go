package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// BesselNorm selects how the Bessel prototype is scaled in frequency.
type BesselNorm string

const (
	// BesselPhase places the phase midpoint at 1 rad/s; the high-frequency
	// asymptote matches a Butterworth filter of the same order.
	BesselPhase BesselNorm = "phase"
	// BesselDelay gives a group delay of 1 s at DC.
	BesselDelay BesselNorm = "delay"
	// BesselMagnitude puts the -3 dB point at 1 rad/s.
	BesselMagnitude BesselNorm = "mag"
)

// MaxBesselOrder is the highest supported Bessel order. The roots of the
// reverse Bessel polynomial grow ill-conditioned with order; past this
// point float64 root finding loses the DC group delay beyond 1e-8.
const MaxBesselOrder = 16

// ParseBesselNorm maps a tag onto a BesselNorm. "magnitude" is accepted as
// an alias of "mag"; an empty tag selects BesselPhase.
func ParseBesselNorm(tag string) (BesselNorm, error) {
	switch tag {
	case "", string(BesselPhase):
		return BesselPhase, nil
	case string(BesselDelay):
		return BesselDelay, nil
	case string(BesselMagnitude), "magnitude":
		return BesselMagnitude, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrNormalization, tag)
	}
}

// Bessel returns the Bessel-Thomson prototype of the given order with unity
// DC gain.
func Bessel(order int, norm BesselNorm) (zpk.ZPK, error) {
	if err := validateOrder(order, MaxBesselOrder); err != nil {
		return zpk.ZPK{}, err
	}

	switch norm {
	case BesselPhase, BesselDelay, BesselMagnitude, "":
	default:
		return zpk.ZPK{}, fmt.Errorf("%w: %q", ErrNormalization, norm)
	}

	delay, err := besselDelayPoles(order)
	if err != nil {
		return zpk.ZPK{}, err
	}

	var scale float64
	switch norm {
	case BesselDelay:
		scale = 1
	case BesselMagnitude:
		scale = halfPowerFrequency(delay)
	default:
		// prod(-p) of the delay poles is (2n)!/(2^n n!); scaling by its n-th
		// root moves the product to 1.
		scale = math.Pow(realProdNeg(delay), 1/float64(order))
	}

	poles := make([]complex128, len(delay))
	for i, p := range delay {
		poles[i] = p / complex(scale, 0)
	}

	return zpk.ZPK{Poles: poles, Gain: realProdNeg(poles)}, nil
}

// besselDelayPoles returns the roots of the reverse Bessel polynomial
// theta_n(s), whose all-pole filter has a DC group delay of 1 s. Each
// conjugate pair is listed upper pole first, ordered by real part; the real
// pole of odd orders comes last.
func besselDelayPoles(order int) ([]complex128, error) {
	// a[k] is the coefficient of s^k: (2n-k)! / (2^(n-k) k! (n-k)!).
	a := make([]float64, order+1)
	a[order] = 1
	for k := order; k > 0; k-- {
		a[k-1] = a[k] * float64((2*order-k+1)*k) / float64(2*(order-k+1))
	}

	// Substituting s = r*z with r = a[0]^(1/n) makes the polynomial monic
	// with unit constant term, keeping the roots near the unit circle.
	r := math.Pow(a[0], 1/float64(order))
	coeff := make([]complex128, order+1)
	for k := range a {
		coeff[order-k] = complex(a[k]*math.Pow(r, float64(k-order)), 0)
	}

	roots, err := polyroot.DurandKerner(coeff)
	if err != nil {
		return nil, fmt.Errorf("prototype: bessel order %d: %w", order, err)
	}

	pairs, reals, err := polyroot.SplitConjugates(roots, 1e-9)
	if err != nil {
		return nil, fmt.Errorf("prototype: bessel order %d: %w", order, err)
	}

	poles := make([]complex128, 0, order)
	for _, p := range pairs {
		p *= complex(r, 0)
		poles = append(poles, p, cmplx.Conj(p))
	}
	for _, x := range reals {
		poles = append(poles, complex(x*r, 0))
	}

	return poles, nil
}

// halfPowerFrequency returns the frequency where the all-pole response
// with the given left-half-plane poles and unity DC gain falls to -3 dB.
// The Bessel magnitude is monotonic, so the crossing is bracketed and then
// bisected.
func halfPowerFrequency(poles []complex128) float64 {
	target := 0.5 * math.Ln2
	excess := func(w float64) float64 {
		// log|H(0)| - log|H(jw)| minus the half-power level.
		var v float64
		for _, p := range poles {
			v += math.Log(cmplx.Abs(complex(0, w)-p)) - math.Log(cmplx.Abs(p))
		}
		return v - target
	}

	lo, hi := 0.0, 1.0
	for excess(hi) < 0 {
		lo, hi = hi, 2*hi
	}

	for range 200 {
		mid := 0.5 * (lo + hi)
		if excess(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= 1e-15*hi {
			break
		}
	}

	return 0.5 * (lo + hi)
}
