// Package polyroot converts between polynomial roots and coefficients and
// sorts root sets into conjugate pairs and real roots.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
)

var (
	// ErrUnpairedRoot is returned when a complex root has no matching conjugate.
	ErrUnpairedRoot = errors.New("polyroot: complex root without conjugate")
	// ErrDegeneratePolynomial is returned for constant polynomials, a zero
	// leading coefficient, or when root iteration fails to converge.
	ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")
)

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// Expand returns the monic polynomial with the given roots, in descending
// power order: z^n + c[1]*z^(n-1) + ... + c[n].
func Expand(roots []complex128) []complex128 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1

	for _, r := range roots {
		c = append(c, 0)
		for i := len(c) - 1; i > 0; i-- {
			c[i] -= r * c[i-1]
		}
	}

	return c
}

// ExpandReal is Expand for a conjugate-closed root set; imaginary residue
// from rounding is discarded.
func ExpandReal(roots []complex128) []float64 {
	c := Expand(roots)
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}

	return out
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order.
func PolyEval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// DurandKerner finds all roots of a polynomial by Weierstrass simultaneous
// iteration. Coefficients are in descending power order:
// coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1
	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / coeff[0]
	}

	// Fujiwara bound: every root lies within this radius.
	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := math.Pow(cmplx.Abs(norm[i]), 1/float64(i)); r > radius {
			radius = r
		}
	}
	radius = math.Max(2*radius, 1e-3)

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.4
		roots[i] = cmplx.Rect(0.5*radius, angle)
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0
		for i := range n {
			den := complex(1, 0)
			for j := range n {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				maxDelta = math.Inf(1)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den
			roots[i] -= delta
			if d := cmplx.Abs(delta) / math.Max(1, cmplx.Abs(roots[i])); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	scale := 0.0
	for _, c := range norm {
		scale = math.Max(scale, cmplx.Abs(c))
	}
	for _, r := range roots {
		if cmplx.Abs(PolyEval(norm, r)) > 1e-9*scale*math.Max(1, math.Pow(cmplx.Abs(r), float64(n))) {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	return math.Abs(imag(a)+imag(b)) <= tol*math.Max(1, math.Abs(imag(a)))
}

// IsReal reports whether r lies on the real axis within a relative tolerance.
func IsReal(r complex128, tol float64) bool {
	return math.Abs(imag(r)) <= tol*cmplx.Abs(r)
}

// SplitConjugates separates roots into one representative per conjugate
// pair (positive imaginary part, averaged with its partner) and the real
// roots. Both outputs are sorted by real part.
func SplitConjugates(roots []complex128, tol float64) ([]complex128, []float64, error) {
	var (
		reals []float64
		upper []complex128
		lower []complex128
	)

	for _, r := range roots {
		switch {
		case IsReal(r, tol):
			reals = append(reals, real(r))
		case imag(r) > 0:
			upper = append(upper, r)
		default:
			lower = append(lower, r)
		}
	}

	if len(upper) != len(lower) {
		return nil, nil, ErrUnpairedRoot
	}

	used := make([]bool, len(lower))
	pairs := make([]complex128, 0, len(upper))
	for _, u := range upper {
		best := -1
		bestDist := math.Inf(1)
		for j, l := range lower {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(u - cmplx.Conj(l)); d < bestDist {
				best, bestDist = j, d
			}
		}

		if best < 0 || !IsConjugate(u, lower[best], ConjugateTol) {
			return nil, nil, ErrUnpairedRoot
		}

		used[best] = true
		pairs = append(pairs, (u+cmplx.Conj(lower[best]))/2)
	}

	sort.Float64s(reals)
	sort.SliceStable(pairs, func(i, j int) bool {
		if real(pairs[i]) != real(pairs[j]) {
			return real(pairs[i]) < real(pairs[j])
		}
		return imag(pairs[i]) < imag(pairs[j])
	})

	return pairs, reals, nil
}
