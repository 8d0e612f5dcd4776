// Package testutil holds signal generators and tolerance checks shared by
// the filter tests.
package testutil

import (
	"math"
	"math/rand"
)

// Noise returns n uniform samples in [-1, 1) from a fixed seed.
func Noise(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

// TwoTone returns amplitude*(sin(2*pi*stop*t) + sin(2*pi*pass*t)) sampled
// at t = i/fs.
func TwoTone(pass, stop, amplitude, fs float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / fs
		out[i] = amplitude * (math.Sin(2*math.Pi*stop*t) + math.Sin(2*math.Pi*pass*t))
	}
	return out
}

// Impulse returns a unit impulse at pos; out-of-range positions give zeros.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}
