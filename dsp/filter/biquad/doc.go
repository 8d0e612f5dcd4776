// Package biquad is the second-order-section runtime used as the cascaded
// reference executor.
//
// A [Section] implements Direct Form II Transposed processing for one
// biquad described by [Coefficients] (a0 normalized to 1). A [Chain]
// cascades sections in order, carrying each section's output into the
// next, which is how a causal fixed-point engine applies an SOS table.
//
// Coefficient synthesis lives in dsp/filter/design.
package biquad
