// Package spectrum measures signals in the frequency domain.
//
// [Analyze] returns the one-sided dB magnitude spectrum of a block,
// [EstimateSampleRate] recovers the rate of a uniformly sampled time axis,
// and [Goertzel] measures the level of a single tone without a full FFT.
package spectrum
