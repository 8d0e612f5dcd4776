package config

import (
	"time"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/signal"
	"github.com/cwbudde/algo-filterdesign/export"
)

// Engine locates and bounds the native filter engine.
type Engine struct {
	Dir     string
	Binary  string
	Timeout time.Duration // zero waits indefinitely
	Skip    bool
}

// Run is the complete, merged configuration of one designer run.
type Run struct {
	Spec design.Spec

	Verbose bool
	Debug   bool

	Seed      int64
	Duration  time.Duration
	Amplitude float64

	Quantizer      string
	FixedPointBits int

	IIRDir  string
	FIRDir  string
	DataDir string
	Engine  Engine

	ReportPath string // Parquet spectra; empty skips the report
	WAVPath    string // test signal as WAV; empty skips the export
}

// Setting keys shared by config files and long flag names.
const (
	KeyFilter         = "filter"
	KeyMode           = "mode"
	KeyOrder          = "order"
	KeySamplingRate   = "sampling_rate"
	KeyStartCutoff    = "start_cutoff"
	KeyStopCutoff     = "stop_cutoff"
	KeyRipple         = "ripple"
	KeyAttenuation    = "attenuation"
	KeyIIRFilterType  = "iir_filter_type"
	KeyWindow         = "window"
	KeyFIRAlgorithm   = "fir_algorithm"
	KeyRollOff        = "roll_off"
	KeyFrequencyRange = "frequency_range"
	KeyFrequencyGain  = "frequency_gain"
	KeyNormalization  = "normalization"
	KeyVerbose        = "verbose"
	KeyDebug          = "debug"

	KeySeed           = "seed"
	KeyDuration       = "duration"
	KeyAmplitude      = "amplitude"
	KeyQuantizer      = "quantizer"
	KeyFixedPointBits = "fixed_point_bits"
	KeyIIRDir         = "iir_dir"
	KeyFIRDir         = "fir_dir"
	KeyDataDir        = "data_dir"
	KeyEngineDir      = "engine_dir"
	KeyEngineBinary   = "engine_binary"
	KeyEngineTimeout  = "engine_timeout"
	KeySkipEngine     = "skip_engine"
	KeyReport         = "report"
	KeyWAV            = "wav"
)

// Defaults returns the settings used when neither file nor flags set a key.
func Defaults() Values {
	return Values{
		KeyIIRFilterType:  string(design.FamilyButterworth),
		KeyWindow:         "hamming",
		KeyNormalization:  "phase",
		KeyVerbose:        "false",
		KeyDebug:          "false",
		KeySeed:           "1",
		KeyDuration:       signal.DefaultDuration.String(),
		KeyAmplitude:      "100",
		KeyQuantizer:      export.QuantizeCast,
		KeyFixedPointBits: "31",
		KeyIIRDir:         "impl/iir_filter",
		KeyFIRDir:         "impl/fir_filter",
		KeyDataDir:        "example_data_sets",
		KeyEngineDir:      "cmd_line_impl",
		KeyEngineBinary:   "./filter_example",
		KeyEngineTimeout:  "0s",
		KeySkipEngine:     "false",
	}
}
