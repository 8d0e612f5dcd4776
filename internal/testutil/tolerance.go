package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t at the first index where got and want differ
// by more than eps, or when their lengths differ.
func RequireNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps || math.IsNaN(d) {
			t.Fatalf("index %d: got %v, want %v (diff %v > %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// GainDB returns the RMS gain of out relative to in, in dB, skipping the
// first skip samples.
func GainDB(in, out []float64, skip int) float64 {
	n := min(len(in), len(out))
	var ein, eout float64
	for i := skip; i < n; i++ {
		ein += in[i] * in[i]
		eout += out[i] * out[i]
	}
	return 10 * math.Log10((eout+1e-300)/(ein+1e-300))
}
