// Package lowpass provides a resonant second-order lowpass filter whose
// cutoff can be retuned on every sample.
//
// The filter runs as a trapezoidal (TPT) state-variable filter, so its
// state stays bounded under arbitrarily fast cutoff changes. At fixed
// settings its transfer function equals the RBJ cookbook lowpass, which
// Coefficients exposes for analysis. Cutoff is clamped to
// [MinCutoffHz, MaxCutoffHz] and the design frequency is additionally kept
// below 0.49 times the sample rate. Resonance in [0, 1] maps exponentially
// onto Q in [1/√2, MaxQ]: zero resonance is a flat Butterworth response,
// full resonance gives a peak of about 21.6 dB at the cutoff.
package lowpass
