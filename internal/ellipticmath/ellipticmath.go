// Package ellipticmath implements the elliptic-function helpers needed by
// the elliptic (Cauer) analog prototype: complete integrals of the first
// kind, Jacobi elliptic functions, their inverses and the degree equation.
//
// All functions use the parameter convention m = k^2.
package ellipticmath

import (
	"errors"
	"math"
	"math/cmplx"
)

const (
	machEps        = 1.11022302462515654042e-16
	maxAGMSteps    = 8
	maxLandenSteps = 10
	degreeTerms    = 7
)

// ErrNoConvergence is returned when a descending Landen sequence fails to
// reach zero within the iteration budget.
var ErrNoConvergence = errors.New("ellipticmath: landen sequence did not converge")

// ErrComplexResult is returned by ArcJacSC1 when the inverse is not purely
// imaginary.
var ErrComplexResult = errors.New("ellipticmath: inverse has a real part")

// agm returns the arithmetic-geometric mean of a and b.
func agm(a, b float64) float64 {
	for range 64 {
		if math.Abs(a-b) <= machEps*a {
			break
		}
		a, b = (a+b)/2, math.Sqrt(a*b)
	}

	return a
}

// K returns the complete elliptic integral of the first kind K(m).
func K(m float64) float64 {
	if m >= 1 {
		return math.Inf(1)
	}

	return math.Pi / (2 * agm(1, math.Sqrt(1-m)))
}

// KComplement returns K(1-p). It stays accurate for tiny p where 1-p
// would round to 1.
func KComplement(p float64) float64 {
	if p <= 0 {
		return math.Inf(1)
	}

	return math.Pi / (2 * agm(1, math.Sqrt(p)))
}

// Jacobi evaluates the Jacobi elliptic functions sn, cn, dn and the
// amplitude phi at real argument u for parameter m in [0, 1].
func Jacobi(u, m float64) (sn, cn, dn, phi float64) {
	if m < 1e-9 {
		s, c := math.Sincos(u)
		ai := 0.25 * m * (u - s*c)
		sn = s - ai*c
		cn = c + ai*s
		phi = u - ai
		dn = 1 - 0.5*m*s*s

		return sn, cn, dn, phi
	}

	if m >= 0.9999999999 {
		ai := 0.25 * (1 - m)
		b := math.Cosh(u)
		t := math.Tanh(u)
		sech := 1 / b
		twon := b * math.Sinh(u)
		sn = t + ai*(twon-u)/(b*b)
		phi = 2*math.Atan(math.Exp(u)) - math.Pi/2 + ai*(twon-u)/b
		ai *= t * sech
		cn = sech - ai*(twon-u)
		dn = sech + ai*(twon+u)

		return sn, cn, dn, phi
	}

	var a, c [maxAGMSteps + 1]float64
	a[0] = 1
	b := math.Sqrt(1 - m)
	c[0] = math.Sqrt(m)
	twon := 1.0

	i := 0
	for math.Abs(c[i]/a[i]) > machEps && i < maxAGMSteps {
		ai := a[i]
		i++
		c[i] = (ai - b) / 2
		t := math.Sqrt(ai * b)
		a[i] = (ai + b) / 2
		b = t
		twon *= 2
	}

	phi = twon * a[i] * u
	var prev float64
	for ; i > 0; i-- {
		t := c[i] * math.Sin(phi) / a[i]
		prev = phi
		phi = (math.Asin(t) + phi) / 2
	}

	sn = math.Sin(phi)
	cn = math.Cos(phi)
	dn = cn / math.Cos(phi-prev)

	return sn, cn, dn, phi
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}

// ArcJacSN returns the inverse Jacobi sn for complex w, i.e. z with
// sn(z, m) = w, using a descending Landen transformation.
func ArcJacSN(w complex128, m float64) (complex128, error) {
	k := math.Sqrt(m)
	switch {
	case k > 1:
		return cmplx.NaN(), nil
	case k == 1:
		return cmplx.Atanh(w), nil
	}

	ks := []float64{k}
	for ks[len(ks)-1] != 0 {
		if len(ks) > maxLandenSteps {
			return 0, ErrNoConvergence
		}
		kn := ks[len(ks)-1]
		kp := math.Sqrt((1 - kn) * (1 + kn))
		ks = append(ks, (1-kp)/(1+kp))
	}

	capK := math.Pi / 2
	for _, kn := range ks[1:] {
		capK *= 1 + kn
	}

	wn := w
	for i := 0; i+1 < len(ks); i++ {
		kn := complex(ks[i], 0)
		knext := complex(ks[i+1], 0)
		wn = 2 * wn / ((1 + knext) * (1 + complement(kn*wn)))
	}

	u := 2 / math.Pi * cmplx.Asin(wn)

	return complex(capK, 0) * u, nil
}

// ArcJacSC1 returns the real z with sc(z, 1-m) = w.
func ArcJacSC1(w, m float64) (float64, error) {
	z, err := ArcJacSN(complex(0, w), m)
	if err != nil {
		return 0, err
	}
	if math.Abs(real(z)) > 1e-14 {
		return 0, ErrComplexResult
	}

	return imag(z), nil
}

// Degree solves the degree equation: given order n and the discrimination
// parameter m1, it returns the selectivity parameter m such that
// n*K(m')/K(m) = K(m1')/K(m1).
func Degree(n int, m1 float64) float64 {
	k1 := K(m1)
	k1p := KComplement(m1)

	q1 := math.Exp(-math.Pi * k1p / k1)
	q := math.Pow(q1, 1/float64(n))

	var num float64
	for j := 0; j <= degreeTerms; j++ {
		num += math.Pow(q, float64(j*(j+1)))
	}

	den := 1.0
	for j := 1; j <= degreeTerms+1; j++ {
		den += 2 * math.Pow(q, float64(j*j))
	}

	r := num / den

	return 16 * q * r * r * r * r
}
