package testutil

import (
	"math"
	"testing"
)

func TestNoiseIsDeterministic(t *testing.T) {
	a, b := Noise(3, 64), Noise(3, 64)
	RequireNearlyEqual(t, a, b, 0)
	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("index %d: %v outside [-1, 1)", i, v)
		}
	}
}

func TestTwoTone(t *testing.T) {
	x := TwoTone(250, 1000, 2, 8000, 8)
	if x[0] != 0 {
		t.Fatalf("x[0] = %v, want 0", x[0])
	}
	// i = 2: sin(pi/2) + sin(pi/8).
	want := 2 * (1 + math.Sin(math.Pi/8))
	if math.Abs(x[2]-want) > 1e-12 {
		t.Fatalf("x[2] = %v, want %v", x[2], want)
	}
	RequireFinite(t, x)
}

func TestImpulse(t *testing.T) {
	RequireNearlyEqual(t, Impulse(4, 2), []float64{0, 0, 1, 0}, 0)
	RequireNearlyEqual(t, Impulse(3, 5), []float64{0, 0, 0}, 0)
}

func TestGainDB(t *testing.T) {
	in := TwoTone(100, 300, 1, 8000, 800)
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = 0.5 * v
	}
	if g := GainDB(in, out, 10); math.Abs(g+6.0206) > 1e-3 {
		t.Fatalf("GainDB = %v, want -6.02", g)
	}
}
