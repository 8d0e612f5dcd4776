// Package fir is the tap-array runtime used as the FIR reference executor.
//
// A [Filter] applies designed taps to an input stream with a circular
// delay line, which is the same causal convolution the external engine
// performs. Tap design lives in dsp/filter/design/firwin.
package fir
