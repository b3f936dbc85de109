package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/stkchorus/dsp/core"
)

var (
	ErrInvalidLength    = errors.New("signal: length must be > 0")
	ErrInvalidAmplitude = errors.New("signal: amplitude must be finite and >= 0")
	ErrInvalidFrequency = errors.New("signal: frequency must be in (0, sampleRate/2)")
)

// Kind selects a generated signal.
type Kind int

const (
	KindSine Kind = iota
	KindNoise
	KindImpulse
	KindSweep
)

var kindNames = []string{"sine", "noise", "impulse", "sweep"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a case-insensitive signal name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("signal: unknown kind %q", name)
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used for noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. Sample rate and block size come from the
// core options, signal-specific settings from opts.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.cfg.SampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Generate dispatches to the generator for kind. freqHz is the sine
// frequency or the sweep end frequency; it is unused for noise and impulse.
func (g *Generator) Generate(kind Kind, freqHz, amplitude float64, samples int) ([]float64, error) {
	switch kind {
	case KindSine:
		return g.Sine(freqHz, amplitude, samples)
	case KindNoise:
		return g.WhiteNoise(amplitude, samples)
	case KindImpulse:
		return g.Impulse(amplitude, samples, 0)
	case KindSweep:
		return g.LogSweep(20, freqHz, amplitude, samples)
	default:
		return nil, fmt.Errorf("signal: unknown kind %d", int(kind))
	}
}

// Sine generates a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate(amplitude, samples); err != nil {
		return nil, fmt.Errorf("sine: %w", err)
	}
	if err := g.validateFrequency(freqHz); err != nil {
		return nil, fmt.Errorf("sine: %w", err)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.validate(amplitude, samples); err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Impulse generates a single sample of height amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if err := g.validate(amplitude, samples); err != nil {
		return nil, fmt.Errorf("impulse: %w", err)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse: position %d outside [0, %d)", pos, samples)
	}

	out := make([]float64, samples)
	out[pos] = amplitude
	return out, nil
}

// LogSweep generates an exponential sine sweep from startHz to endHz.
func (g *Generator) LogSweep(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate(amplitude, samples); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	if err := g.validateFrequency(startHz); err != nil {
		return nil, fmt.Errorf("sweep start: %w", err)
	}
	if err := g.validateFrequency(endHz); err != nil {
		return nil, fmt.Errorf("sweep end: %w", err)
	}

	out := make([]float64, samples)
	duration := float64(samples) / g.cfg.SampleRate
	if startHz == endHz {
		step := 2 * math.Pi * startHz / g.cfg.SampleRate
		for i := range out {
			out[i] = amplitude * math.Sin(step*float64(i))
		}
		return out, nil
	}

	k := math.Log(endHz / startHz)
	scale := 2 * math.Pi * startHz * duration / k
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		out[i] = amplitude * math.Sin(scale*(math.Exp(t/duration*k)-1))
	}
	return out, nil
}

func (g *Generator) validate(amplitude float64, samples int) error {
	if samples <= 0 {
		return ErrInvalidLength
	}
	if amplitude < 0 || !core.Finite(amplitude) {
		return ErrInvalidAmplitude
	}
	return nil
}

func (g *Generator) validateFrequency(hz float64) error {
	if !(hz > 0) || hz >= g.cfg.SampleRate/2 {
		return fmt.Errorf("%w: %g Hz", ErrInvalidFrequency, hz)
	}
	return nil
}

// Normalize scales data in place to targetPeak. Silent input is left as is.
func Normalize(data []float64, targetPeak float64) error {
	if len(data) == 0 {
		return ErrInvalidLength
	}
	if targetPeak < 0 || !core.Finite(targetPeak) {
		return ErrInvalidAmplitude
	}

	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return nil
	}

	vecmath.ScaleBlock(data, data, targetPeak/peak)
	return nil
}
