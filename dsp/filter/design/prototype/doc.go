// Package prototype provides the unit-cutoff analog lowpass prototypes of
// the classical IIR families in zero-pole-gain form.
//
// Every constructor returns a [zpk.ZPK] normalized to 1 rad/s (the meaning
// of "cutoff" follows each family: -3 dB for Butterworth, the ripple edge
// for Chebyshev I and elliptic, the stopband edge for Chebyshev II, and the
// selected normalization for Bessel). Band transforms and discretization
// live in package zpk.
package prototype
