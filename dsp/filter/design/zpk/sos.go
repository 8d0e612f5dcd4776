package zpk

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// realTol classifies a root as real when |imag| <= realTol*|root|.
const realTol = 1e-10

// ErrPairing is returned when roots can not be grouped into sections.
var ErrPairing = errors.New("zpk: cannot pair roots into sections")

// reduce keeps one representative per conjugate pair followed by the real
// roots, so every complex entry stands for itself and its conjugate.
func reduce(roots []complex128) ([]complex128, error) {
	pairs, reals, err := polyroot.SplitConjugates(roots, realTol)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, 0, len(pairs)+len(reals))
	out = append(out, pairs...)
	for _, r := range reals {
		out = append(out, complex(r, 0))
	}

	return out, nil
}

func isReal(r complex128) bool { return imag(r) == 0 }

func countReal(r []complex128) int {
	n := 0
	for _, v := range r {
		if isReal(v) {
			n++
		}
	}

	return n
}

func remove(r []complex128, i int) []complex128 {
	return append(r[:i:i], r[i+1:]...)
}

type rootKind int

const (
	anyRoot rootKind = iota
	realRoot
	complexRoot
)

// nearest returns the index in from closest to target among the roots of
// the requested kind, or -1.
func nearest(from []complex128, target complex128, kind rootKind) int {
	order := make([]int, len(from))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cmplx.Abs(from[order[i]]-target) < cmplx.Abs(from[order[j]]-target)
	})

	for _, idx := range order {
		switch {
		case kind == anyRoot,
			kind == realRoot && isReal(from[idx]),
			kind == complexRoot && !isReal(from[idx]):
			return idx
		}
	}

	return -1
}

// section builds one biquad from up to two zeros and exactly two poles,
// right-aligning the polynomials so missing zeros become leading delays.
func section(zeros, poles []complex128) (biquad.Coefficients, error) {
	if len(zeros) > 2 || len(poles) != 2 {
		return biquad.Coefficients{}, fmt.Errorf("%w: section with %d zeros and %d poles",
			ErrPairing, len(zeros), len(poles))
	}

	b := polyroot.ExpandReal(zeros)
	a := polyroot.ExpandReal(poles)

	var row [6]float64
	copy(row[3-len(b):3], b)
	copy(row[6-len(a):6], a)

	c, ok := biquad.FromRow(row)
	if !ok {
		return biquad.Coefficients{}, fmt.Errorf("%w: section denominator has zero a0", ErrPairing)
	}

	return c, nil
}

// ToSections factors a digital ZPK into second-order sections. Poles
// closest to the unit circle are paired first with their nearest zeros and
// placed last in the cascade; the overall gain goes into the first section.
//
//nolint:cyclop,funlen
func ToSections(f ZPK) ([]biquad.Coefficients, error) {
	if len(f.Zeros) == 0 && len(f.Poles) == 0 {
		return []biquad.Coefficients{{B0: f.Gain}}, nil
	}

	z := append([]complex128(nil), f.Zeros...)
	p := append([]complex128(nil), f.Poles...)
	for len(z) < len(p) {
		z = append(z, 0)
	}
	for len(p) < len(z) {
		p = append(p, 0)
	}
	if len(p)%2 == 1 {
		p = append(p, 0)
		z = append(z, 0)
	}

	n := len(p) / 2

	var err error
	if z, err = reduce(z); err != nil {
		return nil, errors.Join(ErrPairing, err)
	}
	if p, err = reduce(p); err != nil {
		return nil, errors.Join(ErrPairing, err)
	}

	sections := make([]biquad.Coefficients, n)
	for si := n - 1; si >= 0; si-- {
		if len(p) == 0 {
			return nil, ErrPairing
		}

		// worst remaining pole
		p1i := 0
		for i := range p {
			if math.Abs(1-cmplx.Abs(p[i])) < math.Abs(1-cmplx.Abs(p[p1i])) {
				p1i = i
			}
		}
		p1 := p[p1i]
		p = remove(p, p1i)

		var secZeros, secPoles []complex128

		switch {
		case isReal(p1) && countReal(p) == 0:
			// last real pole pairs with one real zero
			zi := nearest(z, p1, realRoot)
			if zi < 0 {
				return nil, ErrPairing
			}
			z1 := z[zi]
			z = remove(z, zi)
			secZeros = []complex128{z1, 0}
			secPoles = []complex128{p1, 0}

		case len(p)+1 == len(z) && !isReal(p1) && countReal(p) == 1 && countReal(z) == 1:
			// the remaining real zero must stay with the remaining real pole
			zi := nearest(z, p1, complexRoot)
			if zi < 0 {
				return nil, ErrPairing
			}
			z1 := z[zi]
			z = remove(z, zi)
			secZeros = []complex128{z1, cmplx.Conj(z1)}
			secPoles = []complex128{p1, cmplx.Conj(p1)}

		default:
			var p2 complex128
			if isReal(p1) {
				p2i := -1
				for i := range p {
					if !isReal(p[i]) {
						continue
					}
					if p2i < 0 || math.Abs(cmplx.Abs(p[i])-1) < math.Abs(cmplx.Abs(p[p2i])-1) {
						p2i = i
					}
				}
				p2 = p[p2i]
				p = remove(p, p2i)
			} else {
				p2 = cmplx.Conj(p1)
			}
			secPoles = []complex128{p1, p2}

			if len(z) == 0 {
				break
			}

			zi := nearest(z, p1, anyRoot)
			z1 := z[zi]
			z = remove(z, zi)

			if !isReal(z1) {
				secZeros = []complex128{z1, cmplx.Conj(z1)}
				break
			}

			secZeros = []complex128{z1}
			if zi = nearest(z, p1, realRoot); zi >= 0 {
				secZeros = append(secZeros, z[zi])
				z = remove(z, zi)
			}
		}

		if sections[si], err = section(secZeros, secPoles); err != nil {
			return nil, err
		}
	}

	sections[0].B0 *= f.Gain
	sections[0].B1 *= f.Gain
	sections[0].B2 *= f.Gain

	return sections, nil
}
