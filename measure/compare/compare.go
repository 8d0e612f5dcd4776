package compare

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-filterdesign/dsp/signal"
	"github.com/cwbudde/algo-filterdesign/dsp/spectrum"
)

// ErrLength is returned when the compared signals cannot be aligned.
var ErrLength = errors.New("compare: signal lengths do not match")

// ToneLevels are the pass- and stop-tone levels of one signal in dB.
type ToneLevels struct {
	PassDB float64
	StopDB float64
}

// Selectivity is the pass-tone level minus the stop-tone level.
func (t ToneLevels) Selectivity() float64 { return t.PassDB - t.StopDB }

// Agreement summarizes how closely the native output follows the local
// reference after the warm-up samples.
type Agreement struct {
	Samples       int
	MaxAbsError   float64
	RMSError      float64
	RelativeRMSDB float64 // RMS error relative to the local RMS
}

// Comparison holds everything the plotting collaborator needs. Native and
// Agreement are nil when no native output was available.
type Comparison struct {
	Tones signal.Tones

	Original spectrum.Spectrum
	Local    spectrum.Spectrum
	Native   *spectrum.Spectrum

	OriginalLevels ToneLevels
	LocalLevels    ToneLevels
	NativeLevels   *ToneLevels

	Agreement *Agreement
}

// StopRejection is how far filtering lowered the stop tone relative to the
// pass tone, in dB.
func (c *Comparison) StopRejection() float64 {
	return c.LocalLevels.Selectivity() - c.OriginalLevels.Selectivity()
}

// Compare analyzes original and local, and native when non-nil. native may
// be shorter than the others (the engine drops a boundary row); all three
// are truncated to the shortest length. Samples before warmup are excluded
// from the agreement figures.
func Compare(original, local, native []float64, sampleRate float64, tones signal.Tones, warmup int) (*Comparison, error) {
	if len(original) != len(local) {
		return nil, fmt.Errorf("%w: original %d, local %d", ErrLength, len(original), len(local))
	}

	n := len(original)
	if native != nil {
		n = min(n, len(native))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d samples", ErrLength, n)
	}

	c := &Comparison{Tones: tones}

	var err error
	if c.Original, c.OriginalLevels, err = analyze(original[:n], sampleRate, tones); err != nil {
		return nil, err
	}
	if c.Local, c.LocalLevels, err = analyze(local[:n], sampleRate, tones); err != nil {
		return nil, err
	}
	if native == nil {
		return c, nil
	}

	spec, levels, err := analyze(native[:n], sampleRate, tones)
	if err != nil {
		return nil, err
	}
	c.Native, c.NativeLevels = &spec, &levels

	agreement := agree(local[:n], native[:n], warmup)
	c.Agreement = &agreement

	return c, nil
}

func analyze(x []float64, sampleRate float64, tones signal.Tones) (spectrum.Spectrum, ToneLevels, error) {
	spec, err := spectrum.Analyze(x, sampleRate)
	if err != nil {
		return spectrum.Spectrum{}, ToneLevels{}, err
	}

	var levels ToneLevels
	if levels.PassDB, err = spectrum.ToneLevelDB(x, tones.Pass, sampleRate); err != nil {
		return spectrum.Spectrum{}, ToneLevels{}, err
	}
	if levels.StopDB, err = spectrum.ToneLevelDB(x, tones.Stop, sampleRate); err != nil {
		return spectrum.Spectrum{}, ToneLevels{}, err
	}

	return spec, levels, nil
}

func agree(local, native []float64, warmup int) Agreement {
	warmup = max(0, min(warmup, len(local)))
	ref := local[warmup:]
	got := native[warmup:]
	if len(ref) == 0 {
		return Agreement{}
	}

	diff := make([]float64, len(ref))
	floats.SubTo(diff, got, ref)

	n := float64(len(ref))
	rmsErr := floats.Norm(diff, 2) / math.Sqrt(n)
	rmsRef := floats.Norm(ref, 2) / math.Sqrt(n)

	return Agreement{
		Samples:       len(ref),
		MaxAbsError:   floats.Norm(diff, math.Inf(1)),
		RMSError:      rmsErr,
		RelativeRMSDB: 20 * math.Log10((rmsErr+spectrum.Floor)/(rmsRef+spectrum.Floor)),
	}
}
