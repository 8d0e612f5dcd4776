package design

import "github.com/cwbudde/algo-filterdesign/dsp/core"

// Synthesize validates s and designs its coefficients. IIR results carry
// both second-order sections and the direct-form transfer function; FIR
// results carry the taps as TF.B with TF.A = [1].
func Synthesize(s Spec) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	edges := s.EdgesHz()
	critical := core.NormalizeFrequencies(edges, s.SampleRate)

	var (
		res *Result
		err error
	)
	if s.Class.IsIIR() {
		res, err = synthesizeIIR(s, critical)
	} else {
		res, err = synthesizeFIR(s)
	}
	if err != nil {
		return nil, err
	}

	res.Critical = critical
	res.CriticalHz = edges

	return res, nil
}
