package smooth

import (
	"math"

	"github.com/cwbudde/stkchorus/dsp/core"
)

// Smoother is a one-pole low-pass for control values.
// The zero value is not usable; construct with New.
type Smoother struct {
	sampleRate float64
	timeMs     float64

	a float64
	b float64
	z float64
}

// New returns a smoother with the given time constant in milliseconds.
// An invalid sample rate is replaced by core.DefaultSampleRate.
func New(timeMs, sampleRate float64) *Smoother {
	s := &Smoother{timeMs: timeMs}
	s.sampleRate = core.SanitizeSampleRate(sampleRate)
	s.init()

	return s
}

// SetSampleRate re-derives the coefficients when the rate changes. Invalid
// rates are coerced to core.DefaultSampleRate before the comparison, so
// repeating an invalid rate is a no-op. A change clears the output state.
func (s *Smoother) SetSampleRate(sampleRate float64) {
	sampleRate = core.SanitizeSampleRate(sampleRate)
	if sampleRate == s.sampleRate {
		return
	}

	s.sampleRate = sampleRate
	s.init()
}

// SetTimeConstantMs changes the response time and clears the output state.
// Values <= 0 disable smoothing.
func (s *Smoother) SetTimeConstantMs(timeMs float64) {
	if !core.Finite(timeMs) {
		return
	}

	s.timeMs = timeMs
	s.init()
}

// Process advances the smoother by one sample towards target and returns
// the new output.
func (s *Smoother) Process(target float64) float64 {
	s.z = target*s.b + s.z*s.a
	return s.z
}

// Reset clears the output state to zero.
func (s *Smoother) Reset() { s.z = 0 }

// Value returns the most recent output without advancing.
func (s *Smoother) Value() float64 { return s.z }

// Coefficients returns the feedback (a) and input (b) coefficients.
func (s *Smoother) Coefficients() (a, b float64) { return s.a, s.b }

// SampleRate returns the sample rate in Hz.
func (s *Smoother) SampleRate() float64 { return s.sampleRate }

// TimeConstantMs returns the time constant in milliseconds.
func (s *Smoother) TimeConstantMs() float64 { return s.timeMs }

func (s *Smoother) init() {
	if s.timeMs <= 0 {
		s.a = 0
	} else {
		s.a = math.Exp(-2 * math.Pi / (s.timeMs * 0.001 * s.sampleRate))
	}

	s.b = 1 - s.a
	s.z = 0
}
