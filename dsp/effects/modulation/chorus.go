package modulation

import (
	"math"

	"github.com/cwbudde/stkchorus/dsp/core"
	"github.com/cwbudde/stkchorus/dsp/filter/lowpass"
	"github.com/cwbudde/stkchorus/dsp/lfo"
	"github.com/cwbudde/stkchorus/dsp/smooth"
)

// DefaultSmoothingTimeMs is the time constant applied to the cutoff before
// it is modulated.
const DefaultSmoothingTimeMs = 1000.0

// Option mutates chorus construction parameters.
type Option func(*chorusConfig)

type chorusConfig struct {
	smoothingTimeMs float64
}

// WithSmoothingTimeMs sets the cutoff smoothing time constant. Negative or
// non-finite values are ignored; zero disables smoothing.
func WithSmoothingTimeMs(ms float64) Option {
	return func(cfg *chorusConfig) {
		if ms >= 0 && core.Finite(ms) {
			cfg.smoothingTimeMs = ms
		}
	}
}

// Chorus is a stereo LFO-modulated lowpass.
//
// Per frame the LFO is advanced once. When the mod depth is non-zero the
// smoothed cutoff is scaled by 2^(lfo*depth/1200), clamped to
// [lowpass.MinCutoffHz, lowpass.MaxCutoffHz] and applied to both channel
// filters. A mod depth of exactly zero skips that step, leaving the filters
// at the cutoff last set through SetParameterValue.
//
// Chorus is not safe for concurrent use. Hosts that change parameters from
// another goroutine should go through a ParamBridge.
type Chorus struct {
	sampleRate float64
	params     [ParamCount]float64

	osc      lfo.Oscillator
	smoother smooth.Smoother
	left     lowpass.Filter
	right    lowpass.Filter
}

// NewChorus creates a chorus and loads the default program. Invalid sample
// rates fall back to core.DefaultSampleRate.
func NewChorus(sampleRate float64, opts ...Option) *Chorus {
	cfg := chorusConfig{smoothingTimeMs: DefaultSmoothingTimeMs}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	sampleRate = core.SanitizeSampleRate(sampleRate)
	c := &Chorus{
		sampleRate: sampleRate,
		osc:        *lfo.New(sampleRate),
		smoother:   *smooth.New(cfg.smoothingTimeMs, sampleRate),
		left:       *lowpass.New(sampleRate),
		right:      *lowpass.New(sampleRate),
	}
	c.LoadProgram(0)

	return c
}

// SampleRateChanged propagates a new host sample rate. Repeating the
// current rate is a no-op.
func (c *Chorus) SampleRateChanged(sampleRate float64) {
	sampleRate = core.SanitizeSampleRate(sampleRate)
	if sampleRate == c.sampleRate {
		return
	}

	c.sampleRate = sampleRate
	c.osc.SetSampleRate(sampleRate)
	c.osc.SetRate(c.params[ParamLFOFrequency])
	c.left.SetSampleRate(sampleRate)
	c.right.SetSampleRate(sampleRate)
	c.smoother.SetSampleRate(sampleRate)
}

// Activate applies the host sample rate before processing resumes. It does
// not clear processing state beyond what SampleRateChanged does; call Reset
// for that.
func (c *Chorus) Activate(sampleRate float64) {
	c.SampleRateChanged(sampleRate)
}

// Reset clears all processing state.
func (c *Chorus) Reset() {
	c.osc.Reset(0)
	c.smoother.Reset()
	c.left.Reset()
	c.right.Reset()
}

// LoadProgram applies the factory program index. Unknown indices are ignored.
func (c *Chorus) LoadProgram(index int) {
	if index != 0 {
		return
	}

	for p := range ParamCount {
		c.SetParameterValue(p, paramInfos[p].Default)
	}
}

// ParameterValue returns the stored value of p, or 0 for an invalid index.
func (c *Chorus) ParameterValue(p Param) float64 {
	if !p.Valid() {
		return 0
	}
	return c.params[p]
}

// SetParameterValue stores v for p and applies it. Invalid indices and NaN
// are ignored; values outside the declared range are clamped to it.
// Cutoff and resonance reach both filters immediately, unsmoothed.
func (c *Chorus) SetParameterValue(p Param, v float64) {
	if !p.Valid() || math.IsNaN(v) {
		return
	}

	v = core.Clamp(v, paramInfos[p].Min, paramInfos[p].Max)
	c.params[p] = v

	switch p {
	case ParamCutoff:
		c.left.SetCutoff(v)
		c.right.SetCutoff(v)
	case ParamResonance:
		c.left.SetResonance(v)
		c.right.SetResonance(v)
	case ParamLFOWaveform:
		c.osc.SetWaveform(lfo.Waveform(int(v)))
	case ParamLFOFrequency:
		c.osc.SetRate(v)
	}
}

// Process filters frames samples of stereo input into the outputs. frames is
// limited to the shortest buffer. Inputs and outputs may alias. Process does
// not allocate.
func (c *Chorus) Process(inL, inR, outL, outR []float64, frames int) {
	frames = min(frames, len(inL), len(inR), len(outL), len(outR))

	depth := c.params[ParamLFOModDepth]
	cutoff := c.params[ParamCutoff]

	for i := 0; i < frames; i++ {
		mod := c.osc.Tick()

		if depth != 0 {
			hz := c.smoother.Process(cutoff) * core.CentsToRatio(mod*depth)
			hz = core.Clamp(hz, lowpass.MinCutoffHz, lowpass.MaxCutoffHz)
			c.left.SetCutoff(hz)
			c.right.SetCutoff(hz)
		}

		outL[i] = c.left.Process(inL[i])
		outR[i] = c.right.Process(inR[i])
	}
}

// SampleRate returns the sample rate in Hz.
func (c *Chorus) SampleRate() float64 { return c.sampleRate }

// Cutoff returns the cutoff currently applied to the channel filters.
func (c *Chorus) Cutoff() float64 { return c.left.Cutoff() }
