package zpk

import "github.com/cwbudde/algo-filterdesign/internal/polyroot"

// ToTransferFunction expands f into numerator and denominator coefficients
// in descending powers of z (equivalently ascending powers of z^-1).
func ToTransferFunction(f ZPK) (b, a []float64) {
	b = polyroot.ExpandReal(f.Zeros)
	for i := range b {
		b[i] *= f.Gain
	}

	return b, polyroot.ExpandReal(f.Poles)
}
