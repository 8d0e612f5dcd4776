// Package design turns a filter [Spec] into coefficients.
//
// [Synthesize] validates the spec against a per-family strategy table and
// then runs one of two paths:
//
//   - IIR: analog prototype (package prototype) -> pre-warped band
//     transform -> bilinear transform -> second-order sections and the
//     direct-form numerator/denominator, both from the same zero-pole-gain
//     value (package zpk).
//   - FIR: windowed-sinc or frequency-sampling taps (package firwin).
//
// Invalid specs fail with [ErrConfiguration] before any coefficients exist.
package design
