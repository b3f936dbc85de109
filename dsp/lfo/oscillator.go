package lfo

import (
	"math"

	"github.com/cwbudde/stkchorus/dsp/core"
)

var expNorm = 2 / (math.E - 1)

// Oscillator is a phase-accumulating LFO.
type Oscillator struct {
	sampleRate float64
	rateHz     float64
	waveform   Waveform

	phase float64
	inc   float64
}

// New returns a triangle oscillator at 0 Hz with phase 0.
func New(sampleRate float64) *Oscillator {
	return &Oscillator{
		sampleRate: core.SanitizeSampleRate(sampleRate),
		waveform:   Triangle,
	}
}

// SetSampleRate changes the sample rate and keeps the rate in Hz.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.sampleRate = core.SanitizeSampleRate(sampleRate)
	o.rateHz = o.clampRate(o.rateHz)
	o.updateIncrement()
}

// SetRate sets the frequency in Hz. Non-finite values are ignored, the rest
// is clamped to [0, sampleRate/2].
func (o *Oscillator) SetRate(rateHz float64) {
	if !core.Finite(rateHz) {
		return
	}

	o.rateHz = o.clampRate(rateHz)
	o.updateIncrement()
}

// SetWaveform selects the output shape. Unknown waveforms are ignored.
func (o *Oscillator) SetWaveform(w Waveform) {
	if w.Valid() {
		o.waveform = w
	}
}

// Tick advances the phase by one sample and returns the value at the new phase.
func (o *Oscillator) Tick() float64 {
	o.phase += o.inc
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}

	return Shape(o.waveform, o.phase)
}

// Value returns the waveform value at the current phase without advancing.
func (o *Oscillator) Value() float64 {
	return Shape(o.waveform, o.phase)
}

// Reset sets the phase to p wrapped into [0, 1).
func (o *Oscillator) Reset(p float64) {
	if !core.Finite(p) {
		p = 0
	}
	o.phase = p - math.Floor(p)
}

// Phase returns the normalized phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Rate returns the frequency in Hz.
func (o *Oscillator) Rate() float64 { return o.rateHz }

// Waveform returns the active shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Shape evaluates waveform w at normalized phase p in [0, 1).
func Shape(w Waveform, p float64) float64 {
	switch w {
	case Sine:
		return math.Sin(2 * math.Pi * p)
	case Sawtooth:
		return 2*p - 1
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Exponential:
		u := 2 * p
		if p >= 0.5 {
			u = 2 * (1 - p)
		}
		return expNorm*(math.Exp(u)-1) - 1
	default:
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return 2 - 4*p
		default:
			return 4*p - 4
		}
	}
}

func (o *Oscillator) clampRate(rateHz float64) float64 {
	return core.Clamp(rateHz, 0, o.sampleRate/2)
}

func (o *Oscillator) updateIncrement() {
	o.inc = o.rateHz / o.sampleRate
}
