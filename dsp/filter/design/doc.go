// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing, following the RBJ audio-EQ
// cookbook formulas pre-warped through the bilinear transform.
package design
