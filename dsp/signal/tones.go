package signal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// ErrTones is returned when no tone pair can be placed for the given edges.
var ErrTones = errors.New("signal: cannot place test tones")

// Rand is the randomness PlaceTones draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Tones is a pass-band/stop-band frequency pair in Hz.
type Tones struct {
	Pass float64
	Stop float64
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// PlaceTones picks a pass tone and a stop tone for mode. critical holds the
// cutoffs in Hz (start, then stop for band modes) or, in custom mode, the
// declared breakpoints.
//
//   - lowpass: pass in [0, start), stop in [start, nyquist)
//   - highpass: pass in [start, nyquist), stop in [0, start)
//   - bandpass: pass between the cutoffs, stop on the wider outer side
//   - bandstop: stop between the cutoffs, pass on the wider outer side
//   - custom: pass is a random interior breakpoint; stop is uniform on
//     (0, nyquist), redrawn while it hits 0, nyquist or a breakpoint
//
//nolint:cyclop
func PlaceTones(mode design.Mode, critical []float64, sampleRate float64, rng Rand) (Tones, error) {
	nyq := core.Nyquist(sampleRate)

	need := 1
	switch mode {
	case design.ModeBandpass, design.ModeBandstop:
		need = 2
	case design.ModeCustom:
		need = 3
	}
	if len(critical) < need {
		return Tones{}, fmt.Errorf("%w: %s needs %d critical frequencies, got %d", ErrTones, mode, need, len(critical))
	}

	var t Tones
	switch mode {
	case design.ModeLowpass:
		t.Pass = uniform(rng, 0, critical[0])
		t.Stop = uniform(rng, critical[0], nyq)
	case design.ModeHighpass:
		t.Pass = uniform(rng, critical[0], nyq)
		t.Stop = uniform(rng, 0, critical[0])
	case design.ModeBandpass:
		t.Stop = outerTone(rng, critical[0], critical[1], nyq)
		t.Pass = uniform(rng, critical[0], critical[1])
	case design.ModeBandstop:
		t.Pass = outerTone(rng, critical[0], critical[1], nyq)
		t.Stop = uniform(rng, critical[0], critical[1])
	case design.ModeCustom:
		interior := critical[1 : len(critical)-1]
		t.Pass = interior[rng.Intn(len(interior))]
		for {
			t.Stop = uniform(rng, 0, nyq)
			if t.Stop != 0 && t.Stop != nyq && !slices.Contains(critical, t.Stop) {
				break
			}
		}
	default:
		return Tones{}, fmt.Errorf("%w: unknown mode %q", ErrTones, mode)
	}

	return t, nil
}

// outerTone draws from whichever of [0, lo) and [hi, nyq) is wider; ties go
// to the lower region.
func outerTone(rng Rand, lo, hi, nyq float64) float64 {
	if nyq-hi > lo {
		return uniform(rng, hi, nyq)
	}

	return uniform(rng, 0, lo)
}
