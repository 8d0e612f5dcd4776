package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0]:
	//
	// n=0: y=0.25, d0=0.5+0.05=0.55, d1=0.25-0.01=0.24
	// n=1: y=0.55, d0=0.11+0.24=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.07-0.022=0.048, d1=-0.014
	// n=3: y=0.048
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1}
	ref := NewSection(c)
	blk := NewSection(c)

	input := []float64{1, -0.5, 0.25, 0.8, 0, -1, 0.3, 0.7, 0.1}
	buf := append([]float64(nil), input...)
	blk.ProcessBlock(buf)

	for i, x := range input {
		want := ref.ProcessSample(x)
		if !almostEqual(buf[i], want, eps) {
			t.Fatalf("sample %d: block=%v, sample=%v", i, buf[i], want)
		}
	}
	if blk.d0 != ref.d0 || blk.d1 != ref.d1 {
		t.Fatalf("state mismatch: %v,%v vs %v,%v", blk.d0, blk.d1, ref.d0, ref.d1)
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, B1: 1, A1: -0.5})
	s.ProcessSample(1)
	s.Reset()
	if s.d0 != 0 || s.d1 != 0 {
		t.Fatalf("state after reset: %v, %v", s.d0, s.d1)
	}
}

func TestRowRoundTrip(t *testing.T) {
	c := Coefficients{B0: 0.1, B1: 0.2, B2: 0.3, A1: -0.4, A2: 0.5}
	row := c.Row()
	if row[3] != 1 {
		t.Fatalf("a0 = %v, want 1", row[3])
	}

	back, ok := FromRow(row)
	if !ok || back != c {
		t.Fatalf("FromRow(Row()) = %v, %v", back, ok)
	}

	scaled, ok := FromRow([6]float64{2, 4, 6, 2, 8, 10})
	if !ok || scaled != (Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}) {
		t.Fatalf("FromRow scaled = %v", scaled)
	}

	if _, ok := FromRow([6]float64{1, 0, 0, 0, 0, 0}); ok {
		t.Fatal("expected zero a0 to be rejected")
	}
}
