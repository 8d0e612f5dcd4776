package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// splitKernel reduces split real and imaginary parts into dst.
type splitKernel func(dst, re, im []float64)

// splitPool recycles the re/im staging buffer between calls.
var splitPool = sync.Pool{
	New: func() any { return new([]float64) },
}

func reduceBins(in []complex128, kernel splitKernel) []float64 {
	n := len(in)
	if n == 0 {
		return nil
	}

	staging := splitPool.Get().(*[]float64) //nolint:forcetypeassert
	if cap(*staging) < 2*n {
		*staging = make([]float64, 2*n)
	}
	re, im := (*staging)[:n], (*staging)[n:2*n]
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, n)
	kernel(out, re, im)
	splitPool.Put(staging)

	return out
}

// Magnitude returns |X[k]| for every bin.
func Magnitude(in []complex128) []float64 { return reduceBins(in, vecmath.Magnitude) }

// Power returns |X[k]|^2 for every bin.
func Power(in []complex128) []float64 { return reduceBins(in, vecmath.Power) }
