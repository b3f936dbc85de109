// Package biquad provides the second-order IIR section used by the lowpass
// filters in this module.
//
// A [Section] implements Direct Form II Transposed processing for the
// transfer function described by [Coefficients]. Coefficients may be
// swapped while the section runs, which is how modulated filters retune
// without clearing their history.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
