// Command filterdesigner designs a digital filter, exports its coefficients
// as C source for the native engine, and validates the engine against a
// local reference on a two-tone test signal.
//
// Usage:
//
//	filterdesigner [flags]
//
// Settings come from the defaults, then the optional config file (-e), then
// the flags given on the command line.
//
// Examples:
//
//	filterdesigner -f iir-biquad -m lowpass -o 4 -s 8000 -c 1000
//	filterdesigner -f iir -m bandpass -o 3 -s 48000 -c 1000 -p 4000 -i ellip -r 1 -t 40
//	filterdesigner -f fir-custom -m custom -o 101 -s 8000 -a firwin2 -fr 0,1000,2000,4000 -fg 0,1,1,0
//	filterdesigner -e run.conf -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/internal/config"
	"github.com/cwbudde/algo-filterdesign/internal/logging"
	"github.com/cwbudde/algo-filterdesign/internal/pipeline"
)

// Exit codes.
const (
	exitOK     = 0
	exitConfig = 2
	exitFailed = 1
)

// flagKeys maps each flag onto its config key.
var flagKeys = map[string]string{
	"f":  config.KeyFilter,
	"m":  config.KeyMode,
	"o":  config.KeyOrder,
	"s":  config.KeySamplingRate,
	"c":  config.KeyStartCutoff,
	"p":  config.KeyStopCutoff,
	"r":  config.KeyRipple,
	"t":  config.KeyAttenuation,
	"i":  config.KeyIIRFilterType,
	"w":  config.KeyWindow,
	"a":  config.KeyFIRAlgorithm,
	"l":  config.KeyRollOff,
	"fr": config.KeyFrequencyRange,
	"fg": config.KeyFrequencyGain,
	"n":  config.KeyNormalization,
	"v":  config.KeyVerbose,
	"d":  config.KeyDebug,

	config.KeySeed:           config.KeySeed,
	config.KeyDuration:       config.KeyDuration,
	config.KeyAmplitude:      config.KeyAmplitude,
	config.KeyQuantizer:      config.KeyQuantizer,
	config.KeyFixedPointBits: config.KeyFixedPointBits,
	config.KeyIIRDir:         config.KeyIIRDir,
	config.KeyFIRDir:         config.KeyFIRDir,
	config.KeyDataDir:        config.KeyDataDir,
	config.KeyEngineDir:      config.KeyEngineDir,
	config.KeyEngineBinary:   config.KeyEngineBinary,
	config.KeyEngineTimeout:  config.KeyEngineTimeout,
	config.KeySkipEngine:     config.KeySkipEngine,
	config.KeyReport:         config.KeyReport,
	config.KeyWAV:            config.KeyWAV,
}

var boolFlags = map[string]bool{"v": true, "d": true, config.KeySkipEngine: true}

var usage = map[string]string{
	"f":  "filter class: iir, iir-biquad, fir, fir-custom",
	"m":  "mode: lowpass, highpass, bandpass, bandstop, custom",
	"o":  "filter order (FIR: number of taps)",
	"s":  "sampling rate in Hz",
	"c":  "start cutoff in Hz",
	"p":  "stop cutoff in Hz (bandpass, bandstop)",
	"r":  "passband ripple in dB (cheby1, ellip)",
	"t":  "stopband attenuation in dB (cheby2, ellip)",
	"i":  "IIR family: butter, cheby1, cheby2, ellip, bessel",
	"w":  "FIR window (firwin)",
	"a":  "FIR algorithm: firwin, firwin2",
	"l":  "FIR roll-off width in Hz (selects a Kaiser window)",
	"fr": "custom breakpoints in Hz, comma separated",
	"fg": "custom gains per breakpoint, comma separated",
	"n":  "Bessel normalization: phase, delay, mag",
	"v":  "verbose logging",
	"d":  "debug logging",

	config.KeySeed:           "test-signal random seed",
	config.KeyDuration:       "test-signal duration (10s or seconds)",
	config.KeyAmplitude:      "test-signal tone amplitude",
	config.KeyQuantizer:      "coefficient literal policy: cast, fixed, macro",
	config.KeyFixedPointBits: "fractional bits for the fixed quantizer",
	config.KeyIIRDir:         "IIR coefficient output directory",
	config.KeyFIRDir:         "FIR coefficient output directory",
	config.KeyDataDir:        "test-signal directory",
	config.KeyEngineDir:      "native engine build directory",
	config.KeyEngineBinary:   "native engine binary, relative to the engine directory",
	config.KeyEngineTimeout:  "native engine timeout (0 waits indefinitely)",
	config.KeySkipEngine:     "skip the native engine comparison",
	config.KeyReport:         "write the comparison spectra to this Parquet file",
	config.KeyWAV:            "write the test signal to this WAV file",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("filterdesigner", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("e", "", "config file with key = value lines")
	for name := range flagKeys {
		if boolFlags[name] {
			fs.Bool(name, false, usage[name])
			continue
		}
		fs.String(name, "", usage[name])
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: filterdesigner [flags]\n\n")
		fmt.Fprintf(stderr, "Designs a filter, exports C coefficients and validates the native engine.\n")
		fmt.Fprintf(stderr, "Explicit flags override the config file (-e), which overrides the defaults.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}

	builder := config.NewBuilder()
	if *configFile != "" {
		file, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitConfig
		}
		builder.WithFile(file)
	}
	builder.WithFlags(explicitFlags(fs))

	cfg, err := builder.Build()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	logger, err := logging.New(logging.WithLevel(logging.LevelFor(cfg.Verbose, cfg.Debug)))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	defer func() { _ = logging.Sync(logger) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := pipeline.Run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		if errors.Is(err, design.ErrConfiguration) {
			return exitConfig
		}
		return exitFailed
	}
	return exitOK
}

// explicitFlags returns only the flags set on the command line so unset
// flags never shadow the config file.
func explicitFlags(fs *flag.FlagSet) config.Values {
	v := make(config.Values)
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v[key] = f.Value.String()
		}
	})
	return v
}
