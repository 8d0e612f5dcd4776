// Package signal synthesizes the two-tone test signals used to validate a
// filter: one tone placed in the pass band, one in the stop band.
//
// Signals are persisted as two-column CSV ("Time (ms),<label>") and can be
// exported as PCM WAV for listening tests.
package signal
