package signal

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Defaults for the two-tone test signal.
const (
	DefaultDuration  = 10 * time.Second
	DefaultAmplitude = 100.0
)

// TestSignal is a sampled two-tone signal with its time axis.
type TestSignal struct {
	TimesMS    []float64
	Samples    []float64
	Tones      Tones
	SampleRate float64
}

// Len returns the number of samples.
func (s *TestSignal) Len() int { return len(s.Samples) }

// Synthesizer creates deterministic two-tone signals.
type Synthesizer struct {
	seed      int64
	rng       Rand
	duration  time.Duration
	amplitude float64
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed sets the random seed used for tone placement.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.seed = seed
	}
}

// WithRand replaces the seeded source used for tone placement.
func WithRand(rng Rand) Option {
	return func(s *Synthesizer) {
		s.rng = rng
	}
}

// WithDuration sets the signal length. Default is 10 s.
func WithDuration(d time.Duration) Option {
	return func(s *Synthesizer) {
		s.duration = d
	}
}

// WithAmplitude sets the per-tone amplitude. Default is 100.
func WithAmplitude(a float64) Option {
	return func(s *Synthesizer) {
		s.amplitude = a
	}
}

// NewSynthesizer creates a Synthesizer. The seed defaults to 1.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		seed:      1,
		duration:  DefaultDuration,
		amplitude: DefaultAmplitude,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.seed))
	}
	return s
}

// TwoTone places a tone pair for mode and synthesizes
// A*(sin(2*pi*stop*t) + sin(2*pi*pass*t)) at t = i/fs.
func (s *Synthesizer) TwoTone(mode design.Mode, critical []float64, sampleRate float64) (*TestSignal, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("two-tone sample rate must be > 0: %f", sampleRate)
	}

	tones, err := PlaceTones(mode, critical, sampleRate, s.rng)
	if err != nil {
		return nil, err
	}

	return s.Synthesize(tones, sampleRate)
}

// Synthesize renders a known tone pair.
func (s *Synthesizer) Synthesize(tones Tones, sampleRate float64) (*TestSignal, error) {
	samples := int(math.Round(s.duration.Seconds() * sampleRate))
	if samples <= 0 {
		return nil, fmt.Errorf("two-tone samples must be > 0: %d", samples)
	}

	stop, err := Sine(tones.Stop, s.amplitude, sampleRate, samples)
	if err != nil {
		return nil, err
	}
	pass, err := Sine(tones.Pass, s.amplitude, sampleRate, samples)
	if err != nil {
		return nil, err
	}

	ts := &TestSignal{
		TimesMS:    make([]float64, samples),
		Samples:    stop,
		Tones:      tones,
		SampleRate: sampleRate,
	}
	for i := range ts.Samples {
		ts.TimesMS[i] = float64(i) * 1000 / sampleRate
		ts.Samples[i] += pass[i]
	}
	return ts, nil
}

// Sine generates a sine wave.
func Sine(freqHz, amplitude, sampleRate float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", sampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
