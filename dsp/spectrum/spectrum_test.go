package spectrum

import (
	"errors"
	"math"
	"testing"
)

func sine(n int, freq, amp, fs float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}

	return x
}

func TestMagnitudePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}
	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 || math.Abs(pow[1]-2) > 1e-12 {
		t.Fatalf("Power=%v", pow)
	}

	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestAnalyze_PeakAtToneBin(t *testing.T) {
	const (
		fs = 1000.0
		n  = 1000
	)

	s, err := Analyze(sine(n, 100, 1, fs), fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(s.MagnitudeDB) != n/2 || len(s.FrequenciesHz) != n/2 {
		t.Fatalf("bins=%d freqs=%d want %d", len(s.MagnitudeDB), len(s.FrequenciesHz), n/2)
	}
	if s.FrequenciesHz[1] != 1 {
		t.Fatalf("bin width=%v want 1", s.FrequenciesHz[1])
	}

	f, level := s.Peak()
	if f != 100 {
		t.Fatalf("peak at %v Hz, want 100", f)
	}
	// |X| = N/2 for a unit sine on an exact bin.
	if want := 20 * math.Log10(n/2); math.Abs(level-want) > 1e-6 {
		t.Fatalf("peak level=%v want %v", level, want)
	}
	if got := s.LevelAt(100.4); got != level {
		t.Fatalf("LevelAt(100.4)=%v want %v", got, level)
	}
	if got := s.LevelAt(250); got > -150 {
		t.Fatalf("off-tone bin too loud: %v dB", got)
	}
}

func TestAnalyze_OddLengthAndSilence(t *testing.T) {
	s, err := Analyze(make([]float64, 7), 7)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(s.MagnitudeDB) != 3 {
		t.Fatalf("bins=%d want 3", len(s.MagnitudeDB))
	}
	for _, v := range s.MagnitudeDB {
		if math.Abs(v-(-240)) > 1e-9 {
			t.Fatalf("silent bin=%v want -240", v)
		}
	}
}

func TestAnalyze_Errors(t *testing.T) {
	if _, err := Analyze([]float64{1}, 10); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err=%v want ErrEmpty", err)
	}
	if _, err := Analyze([]float64{1, 2}, 0); !errors.Is(err, ErrSampleRate) {
		t.Fatalf("err=%v want ErrSampleRate", err)
	}
}

func TestDifference(t *testing.T) {
	a := Spectrum{MagnitudeDB: []float64{0, -3, -6}}
	b := Spectrum{MagnitudeDB: []float64{1, -1}}

	d := Difference(a, b)
	if len(d) != 2 || d[0] != -1 || d[1] != -2 {
		t.Fatalf("Difference=%v", d)
	}
}

func TestEstimateSampleRate(t *testing.T) {
	times := make([]float64, 480)
	for i := range times {
		times[i] = float64(i) * 1000 / 48000
	}

	fs, err := EstimateSampleRate(times)
	if err != nil {
		t.Fatalf("EstimateSampleRate: %v", err)
	}
	if math.Abs(fs-48000) > 1e-6 {
		t.Fatalf("fs=%v want 48000", fs)
	}

	for _, bad := range [][]float64{nil, {1}, {2, 2, 2}, {3, 2, 1}} {
		if _, err := EstimateSampleRate(bad); !errors.Is(err, ErrTimeAxis) {
			t.Fatalf("EstimateSampleRate(%v) err=%v want ErrTimeAxis", bad, err)
		}
	}
}

func TestGoertzel_MatchesTone(t *testing.T) {
	const fs = 8000.0
	x := sine(800, 1000, 0.5, fs)

	level, err := ToneLevelDB(x, 1000, fs)
	if err != nil {
		t.Fatalf("ToneLevelDB: %v", err)
	}
	if want := 20 * math.Log10(0.5); math.Abs(level-want) > 1e-6 {
		t.Fatalf("level=%v want %v", level, want)
	}

	off, err := ToneLevelDB(x, 2000, fs)
	if err != nil {
		t.Fatalf("ToneLevelDB: %v", err)
	}
	if off > -100 {
		t.Fatalf("off-tone level=%v dB", off)
	}

	if _, err := ToneLevelDB(x, 5000, fs); err == nil {
		t.Fatal("expected error above Nyquist")
	}
}

func TestGoertzel_Incremental(t *testing.T) {
	const fs = 1000.0
	x := sine(500, 50, 1, fs)

	g, err := NewGoertzel(50, fs)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}
	g.Write(x[:123])
	g.Write(x[123:])
	whole, _ := ToneLevelDB(x, 50, fs)
	if math.Abs(g.AmplitudeDB()-whole) > 1e-9 {
		t.Fatalf("split writes=%v, one shot=%v", g.AmplitudeDB(), whole)
	}

	g.Reset()
	if got := g.AmplitudeDB(); got > -200 {
		t.Fatalf("reset meter reads %v dB", got)
	}

	if _, err := NewGoertzel(10, 0); !errors.Is(err, ErrSampleRate) {
		t.Fatalf("err=%v want ErrSampleRate", err)
	}
}
