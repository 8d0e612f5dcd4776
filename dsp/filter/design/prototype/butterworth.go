package prototype

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/zpk"
)

// Butterworth returns the order-n Butterworth prototype: n poles evenly
// spaced on the left half of the unit circle, no finite zeros, unity gain.
func Butterworth(order int) (zpk.ZPK, error) {
	if err := validateOrder(order, 0); err != nil {
		return zpk.ZPK{}, err
	}

	poles := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		theta := math.Pi * float64(m) / float64(2*order)
		poles = append(poles, -cmplx.Exp(complex(0, theta)))
	}

	return zpk.ZPK{Poles: poles, Gain: 1}, nil
}
