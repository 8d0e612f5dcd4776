package design

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/firwin"
)

func synthesizeFIR(s Spec) (*Result, error) {
	win, err := windowType(s.Params.Window)
	if err != nil {
		return nil, err
	}

	var taps []float64
	if s.Mode == ModeCustom {
		freqs, gains := breakpointGrid(s.Params.Breakpoints, s.Params.Gains, s.SampleRate)
		taps, err = firwin.FrequencySampling(s.Order, freqs, gains, s.SampleRate, firwin.WithWindow(win))
	} else {
		opts := []firwin.Option{
			firwin.WithWindow(win),
			firwin.WithPassZero(s.Mode == ModeLowpass || s.Mode == ModeBandstop),
		}
		if s.Params.RollOff != nil {
			opts = append(opts, firwin.WithTransitionWidth(*s.Params.RollOff))
		}
		taps, err = firwin.WindowedSinc(s.Order, s.EdgesHz(), s.SampleRate, opts...)
	}
	if err != nil {
		return nil, configError(err)
	}

	return &Result{
		Spec: s,
		TF:   TransferFunction{B: taps, A: []float64{1}},
	}, nil
}

// breakpointGrid expands declared breakpoints into the gain curve handed to
// frequency sampling, sampled at every whole Hz from 0 to Nyquist plus the
// breakpoints themselves. Without gains the band spanned by the breakpoints
// strictly inside (0, Nyquist) has gain 1; with gains the curve runs
// linearly through (breaks[i], gains[i]). Outside the declared breakpoints
// the gain is 0.
func breakpointGrid(breaks, gains []float64, sampleRate float64) (freqs, out []float64) {
	nyq := sampleRate / 2
	top := int(math.Floor(nyq))

	freqs = make([]float64, 0, top+2+len(breaks))
	for f := 0; f <= top; f++ {
		freqs = append(freqs, float64(f))
	}
	freqs = append(freqs, breaks...)
	freqs = append(freqs, nyq)
	slices.Sort(freqs)
	freqs = slices.Compact(freqs)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range breaks {
		if b > 0 && b < nyq {
			lo, hi = math.Min(lo, b), math.Max(hi, b)
		}
	}

	out = make([]float64, len(freqs))
	for i, f := range freqs {
		switch {
		case len(gains) != 0:
			out[i] = gainAt(f, breaks, gains)
		case f >= lo && f <= hi:
			out[i] = 1
		}
	}

	return freqs, out
}

func gainAt(f float64, breaks, gains []float64) float64 {
	if f < breaks[0] || f > breaks[len(breaks)-1] {
		return 0
	}

	j, found := slices.BinarySearch(breaks, f)
	if found {
		return gains[j]
	}

	t := (f - breaks[j-1]) / (breaks[j] - breaks[j-1])

	return gains[j-1] + t*(gains[j]-gains[j-1])
}
