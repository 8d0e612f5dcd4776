package biquad

import (
	"math"
	"testing"
)

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestChain_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	s1 := NewSection(coeffs[0])
	s2 := NewSection(coeffs[1])
	chain := NewChain(coeffs)

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	for i, x := range input {
		ref := s2.ProcessSample(s1.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}

	if chain.NumSections() != 2 {
		t.Fatalf("NumSections = %d", chain.NumSections())
	}
}

func TestChain_FilterResetsState(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	input := []float64{1, 0, 0, 0, 0, 0}

	first := chain.Filter(input)
	second := chain.Filter(input)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
	if input[0] != 1 {
		t.Fatal("Filter modified its input")
	}
}

func TestChain_ResponseMatchesImpulse(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	ir := chain.ImpulseResponse(512)

	var dc float64
	for _, v := range ir {
		dc += v
	}

	h := CascadeResponse(chain.Coefficients(), 0, 48000)
	if math.Abs(real(h)-dc) > 1e-9 || math.Abs(imag(h)) > 1e-12 {
		t.Fatalf("DC response %v, impulse sum %v", h, dc)
	}
}

func TestStable(t *testing.T) {
	if !Stable(twoSectionCoeffs()) {
		t.Fatal("expected stable cascade")
	}

	unstable := []Coefficients{{B0: 1, A1: -2.5, A2: 1.2}}
	if Stable(unstable) {
		t.Fatalf("expected unstable cascade, max radius %v", MaxPoleRadius(unstable))
	}
}
