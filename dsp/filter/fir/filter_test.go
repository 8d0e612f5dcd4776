package fir

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

const eps = 1e-12

func TestProcessSample_Impulse(t *testing.T) {
	taps := []float64{0.1, 0.2, 0.3, 0.4}
	f := New(taps)

	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		want := 0.0
		if i < len(taps) {
			want = taps[i]
		}
		if y := f.ProcessSample(x); math.Abs(y-want) > eps {
			t.Fatalf("n=%d: got %v, want %v", i, y, want)
		}
	}
}

func TestFilter_ImpulseResponseIsTaps(t *testing.T) {
	taps := []float64{0.05, -0.2, 0.6, -0.2, 0.05}
	got := New(taps).Filter(testutil.Impulse(8, 0))

	testutil.RequireNearlyEqual(t, got, append(append([]float64(nil), taps...), 0, 0, 0), eps)
}

func TestFilter_MovingAverage(t *testing.T) {
	f := New([]float64{0.5, 0.5})
	got := f.Filter([]float64{2, 4, 6, 8})
	want := []float64{1, 3, 5, 7}

	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("n=%d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFilter_IsRepeatable(t *testing.T) {
	f := New([]float64{0.25, -0.5, 0.25})
	in := []float64{1, 2, 3, 4, 5}

	a := f.Filter(in)
	b := f.Filter(in)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("n=%d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFilter_MatchesStreaming(t *testing.T) {
	taps := []float64{0.3, -0.1, 0.05, 0.2}
	in := testutil.Noise(2, 64)

	stream := New(taps)
	got := New(taps).Filter(in)
	for i, x := range in {
		if want := stream.ProcessSample(x); math.Abs(got[i]-want) > eps {
			t.Fatalf("n=%d: batch %v, streaming %v", i, got[i], want)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	taps := []float64{0.3, -0.1, 0.05}
	ref := New(taps)
	blk := New(taps)

	in := []float64{1, -1, 0.5, 0.25, 0, 2}
	buf := append([]float64(nil), in...)
	blk.ProcessBlock(buf)

	for i, x := range in {
		if want := ref.ProcessSample(x); math.Abs(buf[i]-want) > eps {
			t.Fatalf("n=%d: block %v, sample %v", i, buf[i], want)
		}
	}
}

func TestResponse_DCGain(t *testing.T) {
	f := New([]float64{0.25, 0.25, 0.25, 0.25})
	if h := f.Response(0, 48000); math.Abs(real(h)-1) > eps || math.Abs(imag(h)) > eps {
		t.Fatalf("DC response = %v, want 1", h)
	}
	if h := f.Response(12000, 48000); cmplx.Abs(h) > eps {
		t.Fatalf("response at fs/4 = %v, want 0", h)
	}
}

func TestTaps_IsCopy(t *testing.T) {
	f := New([]float64{1, 2})
	taps := f.Taps()
	taps[0] = 99
	if f.Taps()[0] != 1 {
		t.Fatal("Taps returned internal storage")
	}
	if f.Order() != 1 {
		t.Fatalf("Order = %d, want 1", f.Order())
	}
}

func TestEmptyFilter(t *testing.T) {
	f := New(nil)
	if y := f.ProcessSample(1); y != 0 {
		t.Fatalf("empty filter output %v", y)
	}
}
