package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
)

// Floor is added to magnitudes before the dB conversion so silent bins
// stay finite.
const Floor = 1e-12

var (
	// ErrEmpty is returned for blocks too short to analyze.
	ErrEmpty = errors.New("spectrum: need at least 2 samples")
	// ErrSampleRate is returned for non-positive or non-finite rates.
	ErrSampleRate = errors.New("spectrum: sample rate must be finite and > 0")
)

// Spectrum is a one-sided magnitude spectrum. Bin k sits at k*fs/N where N
// is the analyzed block length; only the first N/2 bins are kept.
type Spectrum struct {
	FrequenciesHz []float64
	MagnitudeDB   []float64
	SampleRate    float64
	BlockSize     int
}

// Analyze computes 20*log10(|X[k]| + Floor) for k in [0, N/2).
func Analyze(x []float64, sampleRate float64) (Spectrum, error) {
	if len(x) < 2 {
		return Spectrum{}, ErrEmpty
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	n := len(x)
	coeffs := fourier.NewFFT(n).Coefficients(nil, x)
	mag := Magnitude(coeffs[:n/2])

	s := Spectrum{
		FrequenciesHz: make([]float64, n/2),
		MagnitudeDB:   make([]float64, n/2),
		SampleRate:    sampleRate,
		BlockSize:     n,
	}
	for k, m := range mag {
		s.FrequenciesHz[k] = float64(k) * sampleRate / float64(n)
		s.MagnitudeDB[k] = core.LinearToDB(m + Floor)
	}

	return s, nil
}

// BinWidth returns the spacing between bins in Hz.
func (s Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.BlockSize)
}

// Peak returns the frequency and level of the loudest bin.
func (s Spectrum) Peak() (freqHz, levelDB float64) {
	if len(s.MagnitudeDB) == 0 {
		return 0, math.Inf(-1)
	}

	k := floats.MaxIdx(s.MagnitudeDB)

	return s.FrequenciesHz[k], s.MagnitudeDB[k]
}

// LevelAt returns the level of the bin nearest freqHz.
func (s Spectrum) LevelAt(freqHz float64) float64 {
	if len(s.MagnitudeDB) == 0 {
		return math.Inf(-1)
	}

	k := int(math.Round(freqHz / s.BinWidth()))
	k = max(0, min(k, len(s.MagnitudeDB)-1))

	return s.MagnitudeDB[k]
}

// Difference returns a - b bin by bin over the common length.
func Difference(a, b Spectrum) []float64 {
	n := min(len(a.MagnitudeDB), len(b.MagnitudeDB))
	out := make([]float64, n)
	floats.SubTo(out, a.MagnitudeDB[:n], b.MagnitudeDB[:n])

	return out
}
