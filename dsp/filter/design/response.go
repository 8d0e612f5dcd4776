package design

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
)

// DefaultResponsePoints is the number of frequency points used for plots
// and reports.
const DefaultResponsePoints = 8000

// Response is a sampled magnitude response on [0, Nyquist).
type Response struct {
	FrequenciesHz []float64
	DirectDB      []float64
	// SectionsDB is the cascade response; nil for FIR designs.
	SectionsDB []float64
}

// FrequencyResponse evaluates the design at points evenly spaced
// frequencies k*fs/(2*points). The direct form is evaluated as the ratio of
// zero-padded FFTs of B and A.
func (r *Result) FrequencyResponse(points int) Response {
	if points <= 0 {
		points = DefaultResponsePoints
	}
	for 2*points < len(r.TF.B) {
		points *= 2
	}

	fs := r.Spec.SampleRate
	num := paddedSpectrum(r.TF.B, 2*points)
	den := paddedSpectrum(r.TF.A, 2*points)

	resp := Response{
		FrequenciesHz: make([]float64, points),
		DirectDB:      make([]float64, points),
	}
	if r.SOS != nil {
		resp.SectionsDB = make([]float64, points)
	}

	for k := range points {
		f := float64(k) * fs / float64(2*points)
		resp.FrequenciesHz[k] = f
		resp.DirectDB[k] = toDB(cmplx.Abs(num[k] / den[k]))
		if r.SOS != nil {
			resp.SectionsDB[k] = toDB(cmplx.Abs(biquad.CascadeResponse(r.SOS, f, fs)))
		}
	}

	return resp
}

func paddedSpectrum(coeffs []float64, n int) []complex128 {
	buf := make([]float64, n)
	copy(buf, coeffs)

	return fft.FFTReal(buf)
}

func toDB(mag float64) float64 {
	return core.LinearToDB(mag + 1e-12)
}
