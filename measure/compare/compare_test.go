package compare

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/signal"
)

// fakeEngine writes a shell script that copies the input CSV to the output
// path, optionally appending a trailing boundary row.
func fakeEngine(t *testing.T, body string) *Engine {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine"), []byte(script), 0o755))

	return &Engine{Dir: dir, Binary: "./engine", Timeout: 10 * time.Second}
}

func writeSignal(t *testing.T, ts *signal.TestSignal) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, signal.WriteCSV(f, ts, ""))
	require.NoError(t, f.Close())

	return path
}

func lowpassSignal(t *testing.T) (*design.Result, *signal.TestSignal) {
	t.Helper()

	res, err := design.Synthesize(design.Spec{
		Class:       design.ClassIIRBiquad,
		Mode:        design.ModeLowpass,
		Order:       4,
		SampleRate:  1000,
		StartCutoff: 100,
	})
	require.NoError(t, err)

	ts, err := signal.NewSynthesizer().Synthesize(signal.Tones{Pass: 40, Stop: 300}, 1000)
	require.NoError(t, err)

	return res, ts
}

func TestEngine_RunPassesArguments(t *testing.T) {
	e := fakeEngine(t, `echo "$@" > args.txt; cp "$2" "$4"`)
	_, ts := lowpassSignal(t)
	in := writeSignal(t, ts)
	out := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, e.Run(context.Background(), in, out, "iir-biquad", "lowpass"))

	args, err := os.ReadFile(filepath.Join(e.Dir, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("-i %s -o %s -f iir-biquad -s lowpass", in, out), strings.TrimSpace(string(args)))

	got, err := ReadOutput(out, ts.Len())
	require.NoError(t, err)
	assert.Equal(t, ts.Samples[:ts.Len()-1], got)
}

func TestEngine_FailureIsExternalToolError(t *testing.T) {
	e := fakeEngine(t, `echo "segfault" >&2; exit 3`)

	err := e.Run(context.Background(), "in.csv", "out.csv", "fir", "lowpass")
	require.ErrorIs(t, err, ErrExternalTool)
	assert.Contains(t, err.Error(), "segfault")
}

func TestEngine_Timeout(t *testing.T) {
	e := fakeEngine(t, `sleep 5`)
	e.Timeout = 50 * time.Millisecond

	err := e.Run(context.Background(), "in.csv", "out.csv", "fir", "lowpass")
	require.ErrorIs(t, err, ErrExternalTool)
}

func TestEngine_Build(t *testing.T) {
	e := fakeEngine(t, "")
	e.Make = filepath.Join(e.Dir, "fakemake")
	require.NoError(t, os.WriteFile(e.Make, []byte("#!/bin/sh\necho \"${1:-all}\" >> make.log\n"), 0o755))

	require.NoError(t, e.Build(context.Background()))

	log, err := os.ReadFile(filepath.Join(e.Dir, "make.log"))
	require.NoError(t, err)
	assert.Equal(t, "clean\nall\n", string(log))
}

func TestReadOutput_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadOutput(filepath.Join(dir, "missing.csv"), 3)
	require.ErrorIs(t, err, ErrExternalTool)

	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("Time (ms),Sinusoid\n0,1\n1,2\n"), 0o644))
	_, err = ReadOutput(short, 3)
	require.ErrorIs(t, err, ErrExternalTool)

	garbage := filepath.Join(dir, "garbage.csv")
	require.NoError(t, os.WriteFile(garbage, []byte("Time (ms),Sinusoid\n0,1\n1,oops\n2,3\n"), 0o644))
	_, err = ReadOutput(garbage, 3)
	require.ErrorIs(t, err, ErrExternalTool)
}

func TestCompare_LowpassRejectsStopTone(t *testing.T) {
	res, ts := lowpassSignal(t)
	local, err := res.Apply(ts.Samples)
	require.NoError(t, err)

	c, err := Compare(ts.Samples, local, nil, ts.SampleRate, ts.Tones, len(res.TF.B))
	require.NoError(t, err)
	assert.Nil(t, c.Native)
	assert.Nil(t, c.Agreement)

	// Expected Butterworth attenuation at 300 Hz relative to 40 Hz.
	resp := res.FrequencyResponse(500)
	expected := resp.DirectDB[40] - resp.DirectDB[300]
	assert.Greater(t, expected, 30.0)
	assert.GreaterOrEqual(t, c.StopRejection(), expected-1)
	assert.InDelta(t, 0, c.OriginalLevels.Selectivity(), 1e-6)
}

func TestCompare_NativeAgreement(t *testing.T) {
	res, ts := lowpassSignal(t)
	local, err := res.Apply(ts.Samples)
	require.NoError(t, err)

	native := make([]float64, len(local)-1)
	copy(native, local)
	native[2] += 5 // inside the warm-up

	c, err := Compare(ts.Samples, local, native, ts.SampleRate, ts.Tones, 10)
	require.NoError(t, err)
	require.NotNil(t, c.Agreement)
	assert.Equal(t, len(native)-10, c.Agreement.Samples)
	assert.Zero(t, c.Agreement.MaxAbsError)
	assert.Less(t, c.Agreement.RelativeRMSDB, -200.0)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, c))
	rows, err := ReadReport(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, len(native)/2)
	require.NotNil(t, rows[40].NativeDB)
	assert.Equal(t, c.Native.MagnitudeDB[40], *rows[40].NativeDB)
	assert.Equal(t, c.Local.FrequenciesHz[40], rows[40].FrequencyHz)
}

func TestCompare_Errors(t *testing.T) {
	_, err := Compare([]float64{1, 2, 3}, []float64{1, 2}, nil, 1000, signal.Tones{Pass: 1, Stop: 2}, 0)
	require.ErrorIs(t, err, ErrLength)

	_, err = Compare([]float64{1}, []float64{1}, nil, 1000, signal.Tones{Pass: 1, Stop: 2}, 0)
	require.ErrorIs(t, err, ErrLength)
}
