// Package lfo provides a low-frequency oscillator with five waveform shapes.
//
// The oscillator keeps a normalized phase in [0, 1). Each call to
// [Oscillator.Tick] advances the phase by rate/sampleRate, wraps it, and
// returns the waveform value at the new phase. Changing the rate or the
// waveform never touches the phase, so modulation stays continuous across
// parameter changes.
//
// All shapes are bipolar and bounded to [-1, 1]:
//
//	Triangle     4p (p<1/4), 2-4p (p<3/4), 4p-4
//	Sine         sin(2πp)
//	Sawtooth     2p-1, jumps from +1 to -1 at the wrap
//	Square       +1 (p<1/2), -1
//	Exponential  2(e^u-1)/(e-1)-1 with u = 2p (p<1/2) or 2(1-p)
//
// Exponential rises from -1 at p=0 to +1 at p=1/2 and falls back along the
// mirrored curve. The curve is convex, so the shape spends more time below
// zero than above it: its mean over one cycle is about -0.164.
package lfo
