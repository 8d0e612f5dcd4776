package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// ErrExportIO marks a destination that could not be created or written.
var ErrExportIO = errors.New("export: write failed")

// File names written by WriteIIR and WriteFIR.
const (
	IIRSourceName = "iir_coefficients.c"
	IIRHeaderName = "iir_config.h"
	FIRSourceName = "fir_coefficients.c"
	FIRHeaderName = "fir_config.h"
)

// Meta is the filter metadata recorded in the header.
type Meta struct {
	Order   int
	StartHz float64
	StopHz  float64 // 0 when absent
}

// MetaFromSpec extracts header metadata from a design spec.
func MetaFromSpec(s design.Spec) Meta {
	return Meta{Order: s.Order, StartHz: s.StartCutoff, StopHz: s.StopCutoff}
}

// Artifact describes what was written.
type Artifact struct {
	SourcePath  string
	HeaderPath  string
	NumCoeffs   int
	NumSections int
}

var preamble = `// This is an auto generated file by filterdesigner
// You can modify this manually or regenerate it by running filterdesigner
// See the README for more information
`

var iirSourceTmpl = template.Must(template.New("iir_source").Parse(preamble +
	`#include "{{.Header}}"
filter_coeff_t _iir_b_coeffs[IIR_NUM_COEFFS] = {
{{range .B}}	{{.}},
{{end}}};
filter_coeff_t _iir_a_coeffs[IIR_NUM_COEFFS] = {
{{range .A}}	{{.}},
{{end}}};
filter_coeff_t _iir_sos_coeffs[IIR_BIQUAD_NUM_TERMS][6] = {
{{range .SOS}}{{"{"}}{{range .}}{{.}},{{end}}{{"}"}},
{{end}}};
`))

var iirHeaderTmpl = template.Must(template.New("iir_header").Parse(preamble +
	`#ifndef IIR_CONFIG_H_
#define IIR_CONFIG_H_
#include "../filter_types.h"
#define IIR_BIQUAD_NUM_TERMS {{.NumSections}}
#define IIR_NUM_COEFFS {{.NumCoeffs}}
#define IIR_FILTER_ORDER {{.Order}}
#define IIR_START_FREQ {{.Start}}
#define IIR_STOP_FREQ {{.Stop}}
extern filter_coeff_t _iir_sos_coeffs[IIR_BIQUAD_NUM_TERMS][6];
extern filter_coeff_t _iir_b_coeffs[IIR_NUM_COEFFS];
extern filter_coeff_t _iir_a_coeffs[IIR_NUM_COEFFS];
#endif // ifndef IIR_CONFIG_H_
`))

var firSourceTmpl = template.Must(template.New("fir_source").Parse(preamble +
	`#include "{{.Header}}"
filter_coeff_t _fir_b_coeffs[FIR_NUM_COEFFS] = {
{{range .B}}	{{.}},
{{end}}};
`))

var firHeaderTmpl = template.Must(template.New("fir_header").Parse(preamble +
	`#ifndef FIR_CONFIG_H_
#define FIR_CONFIG_H_
#include "../filter_types.h"
#define FIR_NUM_COEFFS {{.NumCoeffs}}
#define FIR_FILTER_ORDER {{.Order}}
#define FIR_START_FREQ {{.Start}}
#define FIR_STOP_FREQ {{.Stop}}
extern filter_coeff_t _fir_b_coeffs[FIR_NUM_COEFFS];
#endif // ifndef FIR_CONFIG_H_
`))

type sourceData struct {
	Header string
	B, A   []string
	SOS    [][]string
}

type headerData struct {
	NumSections int
	NumCoeffs   int
	Order       int
	Start, Stop string
}

func quantizeAll(q Quantizer, values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = q(v)
	}
	return out
}

func freq(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteIIR writes iir_coefficients.c and iir_config.h into dir. The
// numerator and denominator share IIR_NUM_COEFFS; the shorter one is
// zero-padded. Both files are attempted even if one fails.
func WriteIIR(dir string, r *design.Result, meta Meta, q Quantizer) (Artifact, error) {
	if q == nil {
		q = Cast
	}

	n := max(len(r.TF.B), len(r.TF.A))
	b := make([]float64, n)
	a := make([]float64, n)
	copy(b, r.TF.B)
	copy(a, r.TF.A)

	src := sourceData{
		Header: IIRHeaderName,
		B:      quantizeAll(q, b),
		A:      quantizeAll(q, a),
		SOS:    make([][]string, len(r.SOS)),
	}
	for i, row := range biquad.Rows(r.SOS) {
		src.SOS[i] = quantizeAll(q, row[:])
	}

	hdr := headerData{
		NumSections: len(src.SOS),
		NumCoeffs:   len(src.B),
		Order:       meta.Order,
		Start:       freq(meta.StartHz),
		Stop:        freq(meta.StopHz),
	}

	art := Artifact{
		SourcePath:  filepath.Join(dir, IIRSourceName),
		HeaderPath:  filepath.Join(dir, IIRHeaderName),
		NumCoeffs:   hdr.NumCoeffs,
		NumSections: hdr.NumSections,
	}

	return art, errors.Join(
		render(art.SourcePath, iirSourceTmpl, src),
		render(art.HeaderPath, iirHeaderTmpl, hdr),
	)
}

// WriteFIR writes fir_coefficients.c and fir_config.h into dir.
func WriteFIR(dir string, r *design.Result, meta Meta, q Quantizer) (Artifact, error) {
	if q == nil {
		q = Cast
	}

	src := sourceData{
		Header: FIRHeaderName,
		B:      quantizeAll(q, r.TF.B),
	}
	hdr := headerData{
		NumCoeffs: len(src.B),
		Order:     meta.Order,
		Start:     freq(meta.StartHz),
		Stop:      freq(meta.StopHz),
	}

	art := Artifact{
		SourcePath: filepath.Join(dir, FIRSourceName),
		HeaderPath: filepath.Join(dir, FIRHeaderName),
		NumCoeffs:  hdr.NumCoeffs,
	}

	return art, errors.Join(
		render(art.SourcePath, firSourceTmpl, src),
		render(art.HeaderPath, firHeaderTmpl, hdr),
	)
}

// Write dispatches on the result's class.
func Write(iirDir, firDir string, r *design.Result, q Quantizer) (Artifact, error) {
	meta := MetaFromSpec(r.Spec)
	if r.Spec.Class.IsIIR() {
		return WriteIIR(iirDir, r, meta, q)
	}
	return WriteFIR(firDir, r, meta, q)
}

func render(path string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("export: render %s: %w", tmpl.Name(), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrExportIO, err)
	}
	return nil
}
