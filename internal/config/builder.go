package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-filterdesign/export"
)

// Builder layers settings: defaults, then a config file, then explicitly
// set flags. Later layers win key by key.
type Builder struct {
	layers []Values
}

// NewBuilder starts from Defaults.
func NewBuilder() *Builder {
	return &Builder{layers: []Values{Defaults()}}
}

// WithFile adds the settings of a parsed config file.
func (b *Builder) WithFile(v Values) *Builder {
	b.layers = append(b.layers, v)
	return b
}

// WithFlags adds explicitly set flags, keyed like the config file.
func (b *Builder) WithFlags(v Values) *Builder {
	return b.WithFile(v)
}

func (b *Builder) merged() Values {
	out := make(Values)
	for _, layer := range b.layers {
		for k, v := range layer {
			out[CanonicalKey(k)] = v
		}
	}
	return out
}

// Build parses the merged settings into a Run. Filter, mode and the
// numeric spec fields are required; every parse failure wraps
// design.ErrConfiguration. The spec itself is validated by design.Synthesize.
//
//nolint:cyclop,funlen
func (b *Builder) Build() (Run, error) {
	p := parser{v: b.merged()}

	var run Run
	s := &run.Spec

	if tag := p.required(KeyFilter); tag != "" {
		c, err := design.ParseClass(tag)
		p.fail(err)
		s.Class = c
	}
	if tag := p.required(KeyMode); tag != "" {
		m, err := design.ParseMode(tag)
		p.fail(err)
		s.Mode = m
	}

	s.Order = p.int(KeyOrder, true)
	s.SampleRate = p.float(KeySamplingRate, true)
	s.StartCutoff = p.float(KeyStartCutoff, s.Mode != design.ModeCustom)
	s.StopCutoff = p.float(KeyStopCutoff, false)

	s.Params = design.Params{
		IIRFamily:   design.IIRFamily(p.v[KeyIIRFilterType]),
		FIRMethod:   design.FIRMethod(p.v[KeyFIRAlgorithm]),
		Ripple:      p.optionalFloat(KeyRipple),
		Attenuation: p.optionalFloat(KeyAttenuation),
		Window:      p.v[KeyWindow],
		RollOff:     p.optionalFloat(KeyRollOff),
		Breakpoints: p.floats(KeyFrequencyRange),
		Gains:       p.floats(KeyFrequencyGain),
	}
	if s.Params.FIRMethod == "" {
		s.Params.FIRMethod = design.MethodWindowedSinc
		if s.Mode == design.ModeCustom {
			s.Params.FIRMethod = design.MethodFrequencySampling
		}
	}

	norm, err := prototype.ParseBesselNorm(p.v[KeyNormalization])
	p.fail(err)
	s.Params.BesselNorm = norm

	run.Verbose = p.bool(KeyVerbose)
	run.Debug = p.bool(KeyDebug)
	run.Seed = int64(p.int(KeySeed, false))
	run.Duration = p.duration(KeyDuration)
	run.Amplitude = p.float(KeyAmplitude, false)
	run.Quantizer = p.v[KeyQuantizer]
	run.FixedPointBits = p.int(KeyFixedPointBits, false)
	if p.err == nil {
		_, err := export.ParseQuantizer(run.Quantizer, run.FixedPointBits)
		p.fail(err)
	}
	run.IIRDir = p.v[KeyIIRDir]
	run.FIRDir = p.v[KeyFIRDir]
	run.DataDir = p.v[KeyDataDir]
	run.Engine = Engine{
		Dir:     p.v[KeyEngineDir],
		Binary:  p.v[KeyEngineBinary],
		Timeout: p.duration(KeyEngineTimeout),
		Skip:    p.bool(KeySkipEngine),
	}
	run.ReportPath = p.v[KeyReport]
	run.WAVPath = p.v[KeyWAV]

	if p.err != nil {
		return Run{}, p.err
	}
	return run, nil
}

// parser records the first failure so Build reads linearly.
type parser struct {
	v   Values
	err error
}

func (p *parser) fail(err error) {
	if err != nil && p.err == nil {
		if !errors.Is(err, design.ErrConfiguration) {
			err = fmt.Errorf("%w: %w", design.ErrConfiguration, err)
		}
		p.err = err
	}
}

func (p *parser) failf(format string, args ...any) {
	p.fail(fmt.Errorf("%w: "+format, append([]any{design.ErrConfiguration}, args...)...))
}

func (p *parser) required(key string) string {
	v, ok := p.v[key]
	if !ok || v == "" {
		p.failf("%s is required", key)
	}
	return v
}

func (p *parser) int(key string, required bool) int {
	raw, ok := p.v[key]
	if !ok {
		if required {
			p.failf("%s is required", key)
		}
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.failf("%s: %q is not an integer", key, raw)
	}
	return n
}

func (p *parser) float(key string, required bool) float64 {
	raw, ok := p.v[key]
	if !ok {
		if required {
			p.failf("%s is required", key)
		}
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.failf("%s: %q is not a number", key, raw)
	}
	return f
}

func (p *parser) optionalFloat(key string) *float64 {
	if _, ok := p.v[key]; !ok {
		return nil
	}
	f := p.float(key, false)
	return &f
}

// floats parses comma- or space-separated lists.
func (p *parser) floats(key string) []float64 {
	raw, ok := p.v[key]
	if !ok {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			p.failf("%s: %q is not a number", key, f)
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (p *parser) bool(key string) bool {
	raw, ok := p.v[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.failf("%s: %q is not a boolean", key, raw)
	}
	return b
}

// duration accepts Go durations ("10s") or plain seconds ("2.5").
func (p *parser) duration(key string) time.Duration {
	raw, ok := p.v[key]
	if !ok {
		return 0
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.failf("%s: %q is not a duration", key, raw)
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
