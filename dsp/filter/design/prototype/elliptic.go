package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
	"github.com/cwbudde/algo-filterdesign/internal/ellipticmath"
)

const ellipticEps = 2.220446049250313e-16

// Elliptic returns the Cauer prototype with rippleDB of passband ripple and
// attenuationDB of minimum stopband attenuation. The passband edge is at
// 1 rad/s; the stopband edge follows from the degree equation.
//
//nolint:funlen
func Elliptic(order int, rippleDB, attenuationDB float64) (zpk.ZPK, error) {
	if err := validateOrder(order, 0); err != nil {
		return zpk.ZPK{}, err
	}
	if err := validateDB("ripple", rippleDB); err != nil {
		return zpk.ZPK{}, err
	}
	if err := validateDB("attenuation", attenuationDB); err != nil {
		return zpk.ZPK{}, err
	}

	epsSq := math.Expm1(0.1 * rippleDB * math.Ln10)

	if order == 1 {
		p := -math.Sqrt(1 / epsSq)
		return zpk.ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	eps := math.Sqrt(epsSq)
	ck1Sq := epsSq / math.Expm1(0.1*attenuationDB*math.Ln10)
	if ck1Sq == 0 {
		return zpk.ZPK{}, fmt.Errorf("%w: attenuation too large for ripple", ErrShape)
	}

	k1 := ellipticmath.K(ck1Sq)
	m := ellipticmath.Degree(order, ck1Sq)
	capK := ellipticmath.K(m)

	var sn, cn, dn []float64
	for j := 1 - order%2; j < order; j += 2 {
		s, c, d, _ := ellipticmath.Jacobi(float64(j)*capK/float64(order), m)
		sn = append(sn, s)
		cn = append(cn, c)
		dn = append(dn, d)
	}

	var zeros []complex128
	for _, s := range sn {
		if math.Abs(s) > ellipticEps {
			zeros = append(zeros, complex(0, 1/(math.Sqrt(m)*s)))
		}
	}
	for i := range len(zeros) {
		zeros = append(zeros, cmplx.Conj(zeros[i]))
	}

	r, err := ellipticmath.ArcJacSC1(1/eps, ck1Sq)
	if err != nil {
		return zpk.ZPK{}, fmt.Errorf("prototype: elliptic pole placement: %w", err)
	}
	v0 := capK * r / (float64(order) * k1)
	sv, cv, dv, _ := ellipticmath.Jacobi(v0, 1-m)

	poles := make([]complex128, len(sn))
	for i := range sn {
		num := complex(cn[i]*dn[i]*sv*cv, sn[i]*dv)
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		poles[i] = -num / complex(den, 0)
	}

	if order%2 == 1 {
		var energy float64
		for _, p := range poles {
			energy += real(p * cmplx.Conj(p))
		}
		limit := ellipticEps * math.Sqrt(energy)
		for i := range len(poles) {
			if math.Abs(imag(poles[i])) > limit {
				poles = append(poles, cmplx.Conj(poles[i]))
			}
		}
	} else {
		for i := range len(poles) {
			poles = append(poles, cmplx.Conj(poles[i]))
		}
	}

	k := real(prodNeg(poles) / prodNeg(zeros))
	if order%2 == 0 {
		k /= math.Sqrt(1 + epsSq)
	}

	return zpk.ZPK{Zeros: zeros, Poles: poles, Gain: k}, nil
}
