package firwin

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

func gainDB(taps []float64, freqHz, fs float64) float64 {
	w := 2 * math.Pi * freqHz / fs
	var h complex128
	for k, c := range taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return 20 * math.Log10(cmplx.Abs(h))
}

func requireSymmetric(t *testing.T, taps []float64) {
	t.Helper()
	for i := range taps {
		require.InDelta(t, taps[i], taps[len(taps)-1-i], 1e-12, "tap %d", i)
	}
}

func TestWindowedSinc_Lowpass(t *testing.T) {
	taps, err := WindowedSinc(51, []float64{100}, 1000)
	require.NoError(t, err)
	require.Len(t, taps, 51)
	requireSymmetric(t, taps)

	var dc float64
	for _, v := range taps {
		dc += v
	}
	assert.InDelta(t, 1.0, dc, 1e-12)
	assert.Less(t, gainDB(taps, 300, 1000), -40.0)
	assert.InDelta(t, -6.0, gainDB(taps, 100, 1000), 0.5)
}

func TestWindowedSinc_Highpass(t *testing.T) {
	taps, err := WindowedSinc(51, []float64{200}, 1000, WithPassZero(false))
	require.NoError(t, err)
	requireSymmetric(t, taps)

	assert.InDelta(t, 0.0, gainDB(taps, 500, 1000), 1e-9)
	assert.Less(t, gainDB(taps, 50, 1000), -40.0)

	_, err = WindowedSinc(50, []float64{200}, 1000, WithPassZero(false))
	require.ErrorIs(t, err, ErrNyquistGain)
}

func TestWindowedSinc_BandpassAndBandstop(t *testing.T) {
	bp, err := WindowedSinc(101, []float64{150, 250}, 1000, WithPassZero(false))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gainDB(bp, 200, 1000), 1e-9)
	assert.Less(t, gainDB(bp, 50, 1000), -40.0)
	assert.Less(t, gainDB(bp, 400, 1000), -40.0)

	bs, err := WindowedSinc(101, []float64{150, 250}, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gainDB(bs, 0, 1000), 1e-9)
	assert.Less(t, gainDB(bs, 200, 1000), -40.0)
}

func TestWindowedSinc_TransitionWidthUsesKaiser(t *testing.T) {
	const (
		numTaps = 61
		fs      = 1000.0
		width   = 50.0
	)

	got, err := WindowedSinc(numTaps, []float64{100}, fs, WithTransitionWidth(width), WithoutScaling())
	require.NoError(t, err)

	// Same ideal response; only the window differs.
	beta := window.KaiserBeta(window.KaiserAttenuation(numTaps, width/(fs/2)))
	require.Greater(t, beta, 0.0)
	kaiser, err := window.Generate(window.TypeKaiser, numTaps, window.WithBeta(beta))
	require.NoError(t, err)
	rect, err := WindowedSinc(numTaps, []float64{100}, fs, WithWindow(window.TypeRectangular), WithoutScaling())
	require.NoError(t, err)
	for i := range got {
		assert.InDelta(t, rect[i]*kaiser[i], got[i], 1e-15)
	}
}

func TestWindowedSinc_Errors(t *testing.T) {
	tests := []struct {
		name    string
		taps    int
		cutoffs []float64
		want    error
	}{
		{"no taps", 0, []float64{100}, ErrTaps},
		{"no cutoffs", 11, nil, ErrCutoff},
		{"at nyquist", 11, []float64{500}, ErrCutoff},
		{"descending", 11, []float64{200, 100}, ErrCutoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WindowedSinc(tt.taps, tt.cutoffs, 1000)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFrequencySampling_FlatIsDelayedImpulse(t *testing.T) {
	taps, err := FrequencySampling(11, []float64{0, 500}, []float64{1, 1}, 1000, WithWindow(window.TypeRectangular))
	require.NoError(t, err)

	for i, v := range taps {
		want := 0.0
		if i == 5 {
			want = 1
		}
		assert.InDelta(t, want, v, 1e-12, "tap %d", i)
	}
}

func TestFrequencySampling_Lowpass(t *testing.T) {
	taps, err := FrequencySampling(101,
		[]float64{0, 100, 150, 500},
		[]float64{1, 1, 0, 0},
		1000)
	require.NoError(t, err)
	require.Len(t, taps, 101)
	requireSymmetric(t, taps)

	assert.InDelta(t, 0.0, gainDB(taps, 0, 1000), 0.1)
	assert.Less(t, gainDB(taps, 300, 1000), -40.0)
}

func TestFrequencySampling_Errors(t *testing.T) {
	tests := []struct {
		name  string
		taps  int
		freqs []float64
		gains []float64
		want  error
	}{
		{"no taps", 0, []float64{0, 500}, []float64{1, 0}, ErrTaps},
		{"length mismatch", 11, []float64{0, 500}, []float64{1}, ErrBreakpoints},
		{"not from dc", 11, []float64{10, 500}, []float64{1, 0}, ErrBreakpoints},
		{"not to nyquist", 11, []float64{0, 400}, []float64{1, 0}, ErrBreakpoints},
		{"decreasing", 11, []float64{0, 300, 200, 500}, []float64{1, 1, 0, 0}, ErrBreakpoints},
		{"even taps pass nyquist", 10, []float64{0, 500}, []float64{1, 1}, ErrNyquistGain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FrequencySampling(tt.taps, tt.freqs, tt.gains, 1000)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInterp(t *testing.T) {
	xp := []float64{0, 0.5, 0.5, 1}
	fp := []float64{1, 1, 0, 0}

	assert.Equal(t, 1.0, interp(0.25, xp, fp))
	assert.Equal(t, 0.0, interp(0.5, xp, fp))
	assert.Equal(t, 0.0, interp(0.75, xp, fp))
	assert.Equal(t, 1.0, interp(-1, xp, fp))
	assert.InDelta(t, 0.5, interp(0.5, []float64{0, 1}, []float64{0, 1}), 1e-15)
}

func TestNextPowerOf2(t *testing.T) {
	for n, want := range map[int]int{1: 1, 2: 2, 3: 4, 8: 8, 9: 16, 101: 128} {
		assert.Equal(t, want, nextPowerOf2(n), "n=%d", n)
	}
}
