// Package firwin designs linear-phase FIR taps.
//
// [WindowedSinc] sums ideal band-limited sinc responses for a set of band
// edges and tapers them with a window. [FrequencySampling] interpolates a
// piecewise-linear gain curve onto a dense grid and recovers the taps with
// an inverse real FFT.
package firwin
