package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(e^jw) of one section at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate)) // z^-1
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// CascadeResponse is the product of the section responses at freqHz.
func CascadeResponse(sos []Coefficients, freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, s := range sos {
		h *= s.Response(freqHz, sampleRate)
	}
	return h
}

// ImpulseResponse returns the first n samples of the cascade's impulse
// response. The chain is left reset.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	c.Reset()
	ir := make([]float64, n)
	ir[0] = c.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}
	c.Reset()

	return ir
}
