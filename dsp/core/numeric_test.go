package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1e-4, 1e-12) {
		t.Fatal("expected relative comparison for large magnitudes")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestNormalizeFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		fs   float64
		want float64
	}{
		{name: "quarter", freq: 100, fs: 800, want: 0.25},
		{name: "nyquist", freq: 500, fs: 1000, want: 1},
		{name: "dc", freq: 0, fs: 48000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFrequency(tt.freq, tt.fs); !NearlyEqual(got, tt.want, 1e-15) {
				t.Fatalf("NormalizeFrequency(%v, %v) = %v, want %v", tt.freq, tt.fs, got, tt.want)
			}
		})
	}

	got := NormalizeFrequencies([]float64{100, 200}, 1000)
	if len(got) != 2 || got[0] != 0.2 || got[1] != 0.4 {
		t.Fatalf("NormalizeFrequencies = %v", got)
	}
}
