package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
)

func ExampleChain_Filter() {
	// One pole at z = 0.5 with unity DC gain, split over two sections.
	sos := []biquad.Coefficients{
		{B0: 0.5, A1: -0.5},
		{B0: 1},
	}

	y := biquad.NewChain(sos).Filter([]float64{1, 1, 1, 1})
	fmt.Printf("%.4f\n", y)
	// Output:
	// [0.5000 0.7500 0.8750 0.9375]
}

func ExampleFromRow() {
	c, ok := biquad.FromRow([6]float64{0.5, 1, 0.5, 2, -0.4, 0.08})
	fmt.Println(c.Row(), ok)
	// Output:
	// [0.25 0.5 0.25 1 -0.2 0.04] true
}
