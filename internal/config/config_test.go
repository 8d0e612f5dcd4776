package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
)

const sampleFile = `# butterworth lowpass
filter = iir
mode = lowpass
order = 4
sampling_rate = 8000
start_cutoff = 1000
stop_cutoff = None
attenuition = 40

window=hann
`

func TestParseFile(t *testing.T) {
	v, err := ParseFile(strings.NewReader(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "iir", v[KeyFilter])
	assert.Equal(t, "8000", v[KeySamplingRate])
	assert.Equal(t, "40", v[KeyAttenuation], "misspelled key is aliased")
	assert.Equal(t, "hann", v[KeyWindow])
	_, ok := v[KeyStopCutoff]
	assert.False(t, ok, "None leaves the key unset")
}

func TestParseFileErrors(t *testing.T) {
	_, err := ParseFile(strings.NewReader("filter iir\n"))
	require.ErrorIs(t, err, design.ErrConfiguration)
	assert.Contains(t, err.Error(), "line 1")

	_, err = ParseFile(strings.NewReader(" = iir\n"))
	require.ErrorIs(t, err, design.ErrConfiguration)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.conf")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o600))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "4", v[KeyOrder])

	_, err = Load(filepath.Join(t.TempDir(), "missing.conf"))
	require.Error(t, err)
}

func TestBuildDefaults(t *testing.T) {
	file, err := ParseFile(strings.NewReader(sampleFile))
	require.NoError(t, err)

	run, err := NewBuilder().WithFile(file).Build()
	require.NoError(t, err)

	want := design.Spec{
		Class:       design.ClassIIR,
		Mode:        design.ModeLowpass,
		Order:       4,
		SampleRate:  8000,
		StartCutoff: 1000,
	}
	assert.Equal(t, want.Class, run.Spec.Class)
	assert.Equal(t, want.Mode, run.Spec.Mode)
	assert.Equal(t, want.Order, run.Spec.Order)
	assert.InDelta(t, want.SampleRate, run.Spec.SampleRate, 0)
	assert.InDelta(t, want.StartCutoff, run.Spec.StartCutoff, 0)
	assert.Zero(t, run.Spec.StopCutoff)

	p := run.Spec.Params
	assert.Equal(t, design.FamilyButterworth, p.IIRFamily)
	assert.Equal(t, design.MethodWindowedSinc, p.FIRMethod)
	assert.Equal(t, "hann", p.Window)
	assert.Equal(t, prototype.BesselPhase, p.BesselNorm)
	assert.Nil(t, p.Ripple)
	require.NotNil(t, p.Attenuation)
	assert.InDelta(t, 40.0, *p.Attenuation, 0)

	assert.Equal(t, int64(1), run.Seed)
	assert.Equal(t, 10*time.Second, run.Duration)
	assert.InDelta(t, 100.0, run.Amplitude, 0)
	assert.Equal(t, "cast", run.Quantizer)
	assert.Equal(t, 31, run.FixedPointBits)
	assert.Equal(t, "impl/iir_filter", run.IIRDir)
	assert.Equal(t, "impl/fir_filter", run.FIRDir)
	assert.Equal(t, "example_data_sets", run.DataDir)
	assert.Equal(t, Engine{Dir: "cmd_line_impl", Binary: "./filter_example"}, run.Engine)
	assert.False(t, run.Verbose)
	assert.Empty(t, run.ReportPath)
}

func TestBuildFlagsOverrideFile(t *testing.T) {
	file := Values{KeyFilter: "iir", KeyMode: "lowpass", KeyOrder: "4", KeySamplingRate: "8000", KeyStartCutoff: "1000"}
	flags := Values{KeyOrder: "6", KeyVerbose: "true", KeyEngineTimeout: "2.5"}

	run, err := NewBuilder().WithFile(file).WithFlags(flags).Build()
	require.NoError(t, err)

	assert.Equal(t, 6, run.Spec.Order)
	assert.True(t, run.Verbose)
	assert.Equal(t, 2500*time.Millisecond, run.Engine.Timeout)
}

func TestBuildCustomLists(t *testing.T) {
	v := Values{
		KeyFilter:         "fir-custom",
		KeyMode:           "custom",
		KeyOrder:          "101",
		KeySamplingRate:   "8000",
		KeyFrequencyRange: "0, 1000,2000 4000",
		KeyFrequencyGain:  "0,1,1,0",
	}

	run, err := NewBuilder().WithFlags(v).Build()
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1000, 2000, 4000}, run.Spec.Params.Breakpoints)
	assert.Equal(t, []float64{0, 1, 1, 0}, run.Spec.Params.Gains)
	assert.Zero(t, run.Spec.StartCutoff)
	require.NoError(t, run.Spec.Validate())
}

func TestBuildErrors(t *testing.T) {
	base := func() Values {
		return Values{KeyFilter: "iir", KeyMode: "lowpass", KeyOrder: "4", KeySamplingRate: "8000", KeyStartCutoff: "1000"}
	}

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing filter", KeyFilter, ""},
		{"unknown filter", KeyFilter, "kalman"},
		{"unknown mode", KeyMode, "allpass"},
		{"order not integer", KeyOrder, "four"},
		{"rate not number", KeySamplingRate, "fast"},
		{"bad ripple", KeyRipple, "1dB"},
		{"bad list", KeyFrequencyRange, "0,x,2"},
		{"bad bool", KeyVerbose, "maybe"},
		{"bad duration", KeyDuration, "soon"},
		{"bad normalization", KeyNormalization, "peak"},
		{"unknown quantizer", KeyQuantizer, "dither"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := base()
			v[tc.key] = tc.val

			_, err := NewBuilder().WithFlags(v).Build()
			require.ErrorIs(t, err, design.ErrConfiguration)
		})
	}

	missing := base()
	delete(missing, KeyOrder)
	_, err := NewBuilder().WithFlags(missing).Build()
	require.ErrorIs(t, err, design.ErrConfiguration)
	assert.Contains(t, err.Error(), KeyOrder)
}
