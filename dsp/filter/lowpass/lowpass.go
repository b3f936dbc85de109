package lowpass

import (
	"math"

	"github.com/cwbudde/stkchorus/dsp/core"
	"github.com/cwbudde/stkchorus/dsp/filter/biquad"
	"github.com/cwbudde/stkchorus/dsp/filter/design"
)

const (
	MinCutoffHz     = 20.0
	MaxCutoffHz     = 20000.0
	DefaultCutoffHz = 1000.0

	MinResonance = 0.0
	MaxResonance = 1.0

	// MaxQ is the quality factor reached at full resonance.
	MaxQ = 12.0

	nyquistSafetyRatio = 0.49
)

// Filter is a resonant lowpass for one audio channel.
type Filter struct {
	sampleRate float64
	cutoffHz   float64
	resonance  float64

	svf    svf
	coeffs biquad.Coefficients
}

// svf is a trapezoidal state-variable lowpass. Its two integrator states
// carry over unchanged when a1..a3 are replaced, which keeps the output
// bounded while the cutoff moves on every sample.
type svf struct {
	a1, a2, a3 float64
	ic1, ic2   float64
}

func (s *svf) tune(freq, q, sampleRate float64) {
	g := math.Tan(math.Pi * freq / sampleRate)
	k := 1 / q

	s.a1 = 1 / (1 + g*(g+k))
	s.a2 = g * s.a1
	s.a3 = g * s.a2
}

func (s *svf) tick(x float64) float64 {
	v3 := x - s.ic2
	v1 := s.a1*s.ic1 + s.a2*v3
	v2 := s.ic2 + s.a2*s.ic1 + s.a3*v3

	s.ic1 = core.FlushDenormals(2*v1 - s.ic1)
	s.ic2 = core.FlushDenormals(2*v2 - s.ic2)

	return v2
}

// New returns a filter at DefaultCutoffHz with zero resonance.
func New(sampleRate float64) *Filter {
	f := &Filter{
		sampleRate: core.SanitizeSampleRate(sampleRate),
		cutoffHz:   DefaultCutoffHz,
		resonance:  MinResonance,
	}
	f.updateCoefficients()

	return f
}

// SetSampleRate changes the sample rate and recomputes coefficients.
// Invalid rates fall back to core.DefaultSampleRate.
func (f *Filter) SetSampleRate(sampleRate float64) {
	sampleRate = core.SanitizeSampleRate(sampleRate)
	if sampleRate == f.sampleRate {
		return
	}

	f.sampleRate = sampleRate
	f.updateCoefficients()
}

// SetCutoff sets the cutoff in Hz, clamped to [MinCutoffHz, MaxCutoffHz].
// NaN is ignored.
func (f *Filter) SetCutoff(hz float64) {
	if math.IsNaN(hz) {
		return
	}

	hz = core.Clamp(hz, MinCutoffHz, MaxCutoffHz)
	if hz == f.cutoffHz {
		return
	}

	f.cutoffHz = hz
	f.updateCoefficients()
}

// SetResonance sets resonance, clamped to [0, 1]. NaN is ignored.
func (f *Filter) SetResonance(r float64) {
	if math.IsNaN(r) {
		return
	}

	r = core.Clamp(r, MinResonance, MaxResonance)
	if r == f.resonance {
		return
	}

	f.resonance = r
	f.updateCoefficients()
}

// Process filters one sample. NaN and infinite input is treated as silence.
func (f *Filter) Process(x float64) float64 {
	return f.svf.tick(core.SanitizeSample(x))
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.Process(x)
	}
}

// Reset clears the filter history.
func (f *Filter) Reset() {
	f.svf.ic1 = 0
	f.svf.ic2 = 0
}

// ImpulseResponse returns n samples of the current impulse response
// without disturbing the running state.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	s := f.svf
	s.ic1, s.ic2 = 0, 0

	ir := make([]float64, n)
	ir[0] = s.tick(1)
	for i := 1; i < n; i++ {
		ir[i] = s.tick(0)
	}

	return ir
}

// Cutoff returns the clamped cutoff in Hz.
func (f *Filter) Cutoff() float64 { return f.cutoffHz }

// Resonance returns the clamped resonance.
func (f *Filter) Resonance() float64 { return f.resonance }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Q returns the quality factor derived from the resonance.
func (f *Filter) Q() float64 { return ResonanceToQ(f.resonance) }

// Coefficients returns the RBJ biquad with the same transfer function as
// the running filter at its current settings.
func (f *Filter) Coefficients() biquad.Coefficients { return f.coeffs }

// ResonanceToQ maps r in [0, 1] exponentially onto [ButterworthQ, MaxQ].
func ResonanceToQ(r float64) float64 {
	r = core.Clamp(r, MinResonance, MaxResonance)
	return design.ButterworthQ * math.Pow(MaxQ/design.ButterworthQ, r)
}

func (f *Filter) updateCoefficients() {
	freq := math.Min(f.cutoffHz, nyquistSafetyRatio*f.sampleRate)
	q := ResonanceToQ(f.resonance)

	f.svf.tune(freq, q, f.sampleRate)
	f.coeffs = design.Lowpass(freq, q, f.sampleRate)
}
