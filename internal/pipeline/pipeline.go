// Package pipeline runs one design-and-validate pass: design the filter,
// export its coefficients, synthesize a two-tone test signal, filter it
// locally and through the native engine, and compare the spectra.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/signal"
	"github.com/cwbudde/algo-filterdesign/export"
	"github.com/cwbudde/algo-filterdesign/internal/config"
	"github.com/cwbudde/algo-filterdesign/measure/compare"
)

// Outcome collects the artifacts of a run. Native is nil when the engine
// was skipped or failed; Artifact is zero when export failed.
type Outcome struct {
	Result     *design.Result
	Response   design.Response
	Artifact   export.Artifact
	Signal     *signal.TestSignal
	SignalPath string
	Local      []float64
	Native     []float64
	Comparison *compare.Comparison
}

// SignalPaths returns the test-signal and engine-output paths for a class.
func SignalPaths(dataDir string, class design.Class) (in, out string) {
	prefix := "fir"
	if class.IsIIR() {
		prefix = "iir"
	}
	return filepath.Join(dataDir, prefix+"_test_signal.log"),
		filepath.Join(dataDir, prefix+"_filtered_signal.log")
}

// Run executes the pipeline. Configuration errors abort before anything is
// written. Export and engine failures are logged and the run continues
// without the affected artifacts.
func Run(ctx context.Context, run config.Run, logger *zap.Logger) (*Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	spec := run.Spec

	res, err := design.Synthesize(spec)
	if err != nil {
		return nil, err
	}
	logger.Info("filter designed",
		zap.String("class", string(spec.Class)),
		zap.String("mode", string(spec.Mode)),
		zap.Int("order", spec.Order),
		zap.Float64s("critical", res.Critical),
		zap.Int("sections", len(res.SOS)),
		zap.Int("coefficients", len(res.TF.B)),
	)

	out := &Outcome{Result: res}
	out.Response = res.FrequencyResponse(design.DefaultResponsePoints)
	logResponse(logger, res, out.Response)

	q, err := export.ParseQuantizer(run.Quantizer, run.FixedPointBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", design.ErrConfiguration, err)
	}
	if out.Artifact, err = export.Write(run.IIRDir, run.FIRDir, res, q); err != nil {
		logger.Error("coefficient export failed", zap.Error(err))
		out.Artifact = export.Artifact{}
	} else {
		logger.Info("coefficients exported",
			zap.String("source", out.Artifact.SourcePath),
			zap.String("header", out.Artifact.HeaderPath),
		)
	}

	synth := signal.NewSynthesizer(
		signal.WithSeed(run.Seed),
		signal.WithDuration(run.Duration),
		signal.WithAmplitude(run.Amplitude),
	)
	if out.Signal, err = synth.TwoTone(spec.Mode, res.CriticalHz, spec.SampleRate); err != nil {
		return nil, fmt.Errorf("pipeline: test signal: %w", err)
	}
	logger.Info("test signal synthesized",
		zap.Float64("pass_hz", out.Signal.Tones.Pass),
		zap.Float64("stop_hz", out.Signal.Tones.Stop),
		zap.Int("samples", out.Signal.Len()),
	)

	inPath, outPath := SignalPaths(run.DataDir, spec.Class)
	if err := writeSignal(inPath, out.Signal); err != nil {
		logger.Error("test signal export failed", zap.Error(err))
	} else {
		out.SignalPath = inPath
	}
	if run.WAVPath != "" {
		if err := writeWAV(run.WAVPath, out.Signal); err != nil {
			logger.Error("wav export failed", zap.Error(err))
		}
	}

	if out.Local, err = res.Apply(out.Signal.Samples); err != nil {
		return nil, fmt.Errorf("pipeline: local filter: %w", err)
	}

	if !run.Engine.Skip && out.SignalPath != "" {
		out.Native, err = runEngine(ctx, run, logger, inPath, outPath, out.Signal.Len())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("native comparison skipped", zap.Error(err))
			out.Native = nil
		}
	}

	warmup := len(res.TF.B)
	if out.Comparison, err = compare.Compare(out.Signal.Samples, out.Local, out.Native,
		spec.SampleRate, out.Signal.Tones, warmup); err != nil {
		return nil, fmt.Errorf("pipeline: compare: %w", err)
	}
	logComparison(logger, out.Comparison)

	if run.ReportPath != "" {
		if err := writeReport(run.ReportPath, out.Comparison); err != nil {
			logger.Error("report export failed", zap.Error(err))
		}
	}

	return out, nil
}

func runEngine(ctx context.Context, run config.Run, logger *zap.Logger, in, out string, rows int) ([]float64, error) {
	engine := &compare.Engine{
		Dir:     run.Engine.Dir,
		Binary:  run.Engine.Binary,
		Timeout: run.Engine.Timeout,
		Logger:  logger,
	}
	if err := engine.Build(ctx); err != nil {
		return nil, err
	}
	if err := engine.Run(ctx, in, out, run.Spec.Class.EngineTag(), string(run.Spec.Mode)); err != nil {
		return nil, err
	}
	return compare.ReadOutput(out, rows)
}

func writeSignal(path string, ts *signal.TestSignal) error {
	return createFile(path, func(f *os.File) error {
		return signal.WriteCSV(f, ts, signal.DefaultLabel)
	})
}

func writeWAV(path string, ts *signal.TestSignal) error {
	return createFile(path, func(f *os.File) error {
		return signal.WriteWAV(f, ts, 16)
	})
}

func writeReport(path string, c *compare.Comparison) error {
	return createFile(path, func(f *os.File) error {
		return compare.WriteReport(f, c)
	})
}

// createFile creates path (and its directory) and hands it to write. Every
// failure wraps export.ErrExportIO.
func createFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", export.ErrExportIO, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", export.ErrExportIO, err)
	}
	werr := write(f)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return fmt.Errorf("%w: %s: %w", export.ErrExportIO, path, err)
	}
	return nil
}

func logResponse(logger *zap.Logger, res *design.Result, resp design.Response) {
	if ce := logger.Check(zap.DebugLevel, "frequency response"); ce != nil {
		fields := []zap.Field{zap.Int("points", len(resp.FrequenciesHz))}
		for _, f := range res.CriticalHz {
			fields = append(fields, zap.Float64(fmt.Sprintf("db_at_%gHz", f), responseAt(resp.FrequenciesHz, resp.DirectDB, f)))
		}
		ce.Write(fields...)
	}
}

// responseAt returns the level of the bin nearest to f.
func responseAt(freqs, db []float64, f float64) float64 {
	if len(freqs) < 2 {
		return 0
	}
	step := freqs[1] - freqs[0]
	k := int(f/step + 0.5)
	k = max(0, min(k, len(db)-1))
	return db[k]
}

func logComparison(logger *zap.Logger, c *compare.Comparison) {
	fields := []zap.Field{
		zap.Float64("original_selectivity_db", c.OriginalLevels.Selectivity()),
		zap.Float64("local_selectivity_db", c.LocalLevels.Selectivity()),
		zap.Float64("stop_rejection_db", c.StopRejection()),
	}
	if c.NativeLevels != nil {
		fields = append(fields, zap.Float64("native_selectivity_db", c.NativeLevels.Selectivity()))
	}
	if c.Agreement != nil {
		fields = append(fields,
			zap.Float64("max_abs_error", c.Agreement.MaxAbsError),
			zap.Float64("relative_rms_db", c.Agreement.RelativeRMSDB),
		)
	}
	logger.Info("comparison", fields...)
}
