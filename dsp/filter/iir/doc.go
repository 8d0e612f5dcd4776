// Package iir is the direct-form runtime used as the recursive reference
// executor.
//
// A [Filter] applies a whole numerator/denominator pair through one
// transposed direct-form II delay line, matching the lfilter difference
// equation. High orders are numerically fragile in this form; the cascaded
// runtime in dsp/filter/biquad is the stable alternative.
package iir
