package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
)

// Goertzel measures a single frequency over every sample written since the
// last Reset.
type Goertzel struct {
	coeff  float64
	s1, s2 float64
	n      int
}

// NewGoertzel returns a meter for freqHz, which must lie in [0, fs/2].
func NewGoertzel(freqHz, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}
	if !(freqHz >= 0 && freqHz <= core.Nyquist(sampleRate)) {
		return nil, fmt.Errorf("goertzel: frequency %v outside [0, %v]", freqHz, core.Nyquist(sampleRate))
	}

	return &Goertzel{coeff: 2 * math.Cos(2*math.Pi*freqHz/sampleRate)}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() { g.s1, g.s2, g.n = 0, 0, 0 }

// Write runs the recurrence over x.
func (g *Goertzel) Write(x []float64) {
	s1, s2 := g.s1, g.s2
	for _, v := range x {
		s1, s2 = v+g.coeff*s1-s2, s1
	}
	g.s1, g.s2 = s1, s2
	g.n += len(x)
}

// Power is |X(f)|^2 over the written samples, the same as a DFT bin of
// that length when f falls on the bin.
func (g *Goertzel) Power() float64 {
	return max(0, g.s1*g.s1+g.s2*g.s2-g.coeff*g.s1*g.s2)
}

// AmplitudeDB is the tone amplitude 2*|X(f)|/N in dB re a unit sinusoid.
func (g *Goertzel) AmplitudeDB() float64 {
	if g.n == 0 {
		return core.LinearToDB(Floor)
	}
	return core.LinearToDB(2*math.Sqrt(g.Power())/float64(g.n) + Floor)
}

// ToneLevelDB measures the tone at freqHz in x. A full-scale sine over a
// whole number of periods reads close to 0 dB.
func ToneLevelDB(x []float64, freqHz, sampleRate float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}

	g, err := NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}
	g.Write(x)

	return g.AmplitudeDB(), nil
}
