// Package export writes designed coefficients as C source and header files
// for the embedded filter engine.
//
// Every array size in the header is computed from the slice that is
// written, so the two files cannot drift apart. Each literal goes through a
// [Quantizer] chosen to match the engine's numeric convention.
package export
