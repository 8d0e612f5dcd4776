package prototype

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
)

// Chebyshev1 returns the type I prototype with rippleDB of equiripple in
// the passband. The passband edge is at 1 rad/s. Even orders have their DC
// gain lowered to the bottom of the ripple band.
func Chebyshev1(order int, rippleDB float64) (zpk.ZPK, error) {
	if err := validateOrder(order, 0); err != nil {
		return zpk.ZPK{}, err
	}
	if err := validateDB("ripple", rippleDB); err != nil {
		return zpk.ZPK{}, err
	}

	eps := math.Sqrt(math.Pow(10, 0.1*rippleDB) - 1)
	mu := math.Asinh(1/eps) / float64(order)

	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		theta := math.Pi * float64(m) / float64(2*order)
		poles = append(poles, -cmplx.Sinh(complex(mu, theta)))
	}

	k := realProdNeg(poles)
	if order%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}

	return zpk.ZPK{Poles: poles, Gain: k}, nil
}

// Chebyshev2 returns the type II (inverse Chebyshev) prototype with
// stopband attenuation of attenuationDB. The stopband edge is at 1 rad/s.
func Chebyshev2(order int, attenuationDB float64) (zpk.ZPK, error) {
	if err := validateOrder(order, 0); err != nil {
		return zpk.ZPK{}, err
	}
	if err := validateDB("attenuation", attenuationDB); err != nil {
		return zpk.ZPK{}, err
	}

	n := float64(order)
	de := 1 / math.Sqrt(math.Pow(10, 0.1*attenuationDB)-1)
	mu := math.Asinh(1/de) / n

	zeros := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		if m == 0 {
			continue
		}
		// -conj(j / sin(m*pi/2n))
		zeros = append(zeros, complex(0, 1/math.Sin(float64(m)*math.Pi/(2*n))))
	}

	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		b := -cmplx.Exp(complex(0, math.Pi*float64(m)/(2*n)))
		p := complex(math.Sinh(mu)*real(b), math.Cosh(mu)*imag(b))
		poles = append(poles, 1/p)
	}

	k := real(prodNeg(poles) / prodNeg(zeros))

	return zpk.ZPK{Zeros: zeros, Poles: poles, Gain: k}, nil
}

func prodNeg(r []complex128) complex128 {
	p := complex(1, 0)
	for _, v := range r {
		p *= -v
	}
	return p
}

func realProdNeg(r []complex128) float64 {
	return real(prodNeg(r))
}
