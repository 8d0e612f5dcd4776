// Command fftcompare compares the spectra of two CSV signal logs.
//
// Usage:
//
//	fftcompare [flags] <log-a> <log-b>
//
// Each log has a header line, a time column in milliseconds and one or
// more value columns; lines starting with '#' are skipped. The sample rate
// of each log is estimated from its timestamps.
//
// Examples:
//
//	fftcompare example_data_sets/iir_test_signal.log example_data_sets/iir_filtered_signal.log
//	fftcompare -top 20 a.log b.log
//	fftcompare -steps capture.log reference.log
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/cwbudde/algo-filterdesign/dsp/signal"
	"github.com/cwbudde/algo-filterdesign/dsp/spectrum"
)

// stepsShift converts logger step timestamps to milliseconds.
const stepsShift = 8

type column struct {
	file  string
	name  string
	spec  spectrum.Spectrum
	count int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fftcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	top := fs.Int("top", 10, "number of largest level differences to list (0 disables)")
	steps := fs.Bool("steps", false, "timestamps are logger steps; shift right by 8 bits to get milliseconds")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fftcompare [flags] <log-a> <log-b>\n\n")
		fmt.Fprintf(stderr, "Compares the magnitude spectra of two CSV signal logs.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	var sets [2][]column
	for i, path := range fs.Args() {
		cols, err := load(path, *steps)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		sets[i] = cols
	}

	if err := printSummary(stdout, append(sets[0], sets[1]...)); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *top > 0 {
		for c := range min(len(sets[0]), len(sets[1])) {
			if err := printDifferences(stdout, sets[0][c], sets[1][c], *top); err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
				return 1
			}
		}
	}
	return 0
}

func load(path string, steps bool) ([]column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := signal.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(table.Header) < 2 {
		return nil, fmt.Errorf("%s: need a time column and at least one value column", path)
	}

	times := table.Columns[0]
	if steps {
		for i, t := range times {
			times[i] = float64(int64(t) >> stepsShift)
		}
	}

	rate, err := spectrum.EstimateSampleRate(times)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cols := make([]column, 0, len(table.Header)-1)
	for c := 1; c < len(table.Header); c++ {
		spec, err := spectrum.Analyze(table.Columns[c], rate)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, table.Header[c], err)
		}
		cols = append(cols, column{file: path, name: table.Header[c], spec: spec, count: table.Rows()})
	}
	return cols, nil
}

func printSummary(w io.Writer, cols []column) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tColumn\tSamples\tRate [Hz]\tBin [Hz]\tPeak [Hz]\tPeak [dB]\n")
	fmt.Fprintf(tw, "----\t------\t-------\t---------\t--------\t---------\t---------\n")

	for _, c := range cols {
		f, db := c.spec.Peak()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%.4f\t%.3f\t%.2f\n",
			c.file, c.name, c.count, c.spec.SampleRate, c.spec.BinWidth(), f, db)
	}
	return tw.Flush()
}

// printDifferences lists the bins of a where b differs most. b is read at
// a's bin frequencies so logs of different rates or lengths still compare.
func printDifferences(w io.Writer, a, b column, top int) error {
	n := len(a.spec.FrequenciesHz)
	diff := make([]float64, n)
	idx := make([]int, n)
	for k, f := range a.spec.FrequenciesHz {
		diff[k] = a.spec.MagnitudeDB[k] - b.spec.LevelAt(f)
		idx[k] = k
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return math.Abs(diff[idx[i]]) > math.Abs(diff[idx[j]])
	})

	fmt.Fprintf(w, "\n%s vs %s\n", a.name, b.name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tA [dB]\tB [dB]\tA-B [dB]\n")
	fmt.Fprintf(tw, "---------\t------\t------\t--------\n")
	for _, k := range idx[:min(top, n)] {
		f := a.spec.FrequenciesHz[k]
		fmt.Fprintf(tw, "%.3f\t%.2f\t%.2f\t%+.2f\n", f, a.spec.MagnitudeDB[k], b.spec.LevelAt(f), diff[k])
	}
	return tw.Flush()
}
