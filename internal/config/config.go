package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/stkchorus/dsp/effects/modulation"
	"github.com/cwbudde/stkchorus/dsp/lfo"
	"github.com/cwbudde/stkchorus/dsp/signal"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the CLI settings. Defaults come from STKCHORUS_* environment
// variables, flags override them.
type Config struct {
	// Host
	SampleRate int
	BlockSize  int
	Duration   time.Duration
	Gain       float64 // linear output gain

	// Source
	Source      string // sine, noise, impulse, sweep
	SourceFreq  float64
	SourceLevel float64
	Seed        int64
	Input       string // optional float32 WAV input, replaces Source

	// Output
	Output  string
	FFTSize int

	// Chorus
	Cutoff      float64
	Resonance   float64
	Waveform    string
	LFOFreq     float64
	ModDepth    float64 // cents
	SmoothingMs float64
}

// FromEnv returns the defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		SampleRate: envInt("STKCHORUS_SAMPLE_RATE", 48000),
		BlockSize:  envInt("STKCHORUS_BLOCK_SIZE", 512),
		Duration:   envDuration("STKCHORUS_DURATION", 5*time.Second),
		Gain:       envFloat("STKCHORUS_GAIN", 1),

		Source:      envStr("STKCHORUS_SOURCE", "noise"),
		SourceFreq:  envFloat("STKCHORUS_SOURCE_FREQ", 220),
		SourceLevel: envFloat("STKCHORUS_SOURCE_LEVEL", 0.5),
		Seed:        int64(envInt("STKCHORUS_SEED", 1)),
		Input:       envStr("STKCHORUS_INPUT", ""),

		Output:  envStr("STKCHORUS_OUTPUT", "stkchorus.wav"),
		FFTSize: envInt("STKCHORUS_FFT_SIZE", 8192),

		Cutoff:      envFloat("STKCHORUS_CUTOFF", 15000),
		Resonance:   envFloat("STKCHORUS_RESONANCE", 0),
		Waveform:    envStr("STKCHORUS_WAVEFORM", lfo.Triangle.String()),
		LFOFreq:     envFloat("STKCHORUS_LFO_FREQ", 1),
		ModDepth:    envFloat("STKCHORUS_MOD_DEPTH", 0),
		SmoothingMs: envFloat("STKCHORUS_SMOOTHING_MS", modulation.DefaultSmoothingTimeMs),
	}
}

// RegisterFlags binds c to fs. The current values of c become the flag
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.SampleRate, "rate", c.SampleRate, "sample rate in Hz")
	fs.IntVar(&c.BlockSize, "block", c.BlockSize, "frames per processing block")
	fs.DurationVar(&c.Duration, "duration", c.Duration, "length of rendered or played audio")
	fs.Float64Var(&c.Gain, "gain", c.Gain, "linear output gain")

	fs.StringVar(&c.Source, "source", c.Source, "test signal: sine, noise, impulse or sweep")
	fs.Float64Var(&c.SourceFreq, "source-freq", c.SourceFreq, "sine frequency or sweep end frequency in Hz")
	fs.Float64Var(&c.SourceLevel, "source-level", c.SourceLevel, "test signal peak amplitude")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "noise seed")
	fs.StringVar(&c.Input, "in", c.Input, "float32 WAV input, overrides -source")

	fs.StringVar(&c.Output, "out", c.Output, "output WAV path")
	fs.IntVar(&c.FFTSize, "fft", c.FFTSize, "FFT size for analyze")

	fs.Float64Var(&c.Cutoff, "cutoff", c.Cutoff, "filter cutoff in Hz")
	fs.Float64Var(&c.Resonance, "resonance", c.Resonance, "filter resonance 0..1")
	fs.StringVar(&c.Waveform, "waveform", c.Waveform, "LFO waveform name")
	fs.Float64Var(&c.LFOFreq, "lfo-freq", c.LFOFreq, "LFO frequency in Hz")
	fs.Float64Var(&c.ModDepth, "depth", c.ModDepth, "LFO modulation depth in cents")
	fs.Float64Var(&c.SmoothingMs, "smoothing", c.SmoothingMs, "cutoff smoothing time constant in ms")
}

// Load reads the environment, then parses args with fs.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := FromEnv()
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks host and source settings. Chorus parameters are not
// checked here since the chorus clamps them.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.SampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalid, c.BlockSize)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration %v", ErrInvalid, c.Duration)
	case c.Gain < 0:
		return fmt.Errorf("%w: gain %g", ErrInvalid, c.Gain)
	case c.FFTSize < 2 || c.FFTSize&(c.FFTSize-1) != 0:
		return fmt.Errorf("%w: fft size %d is not a power of two", ErrInvalid, c.FFTSize)
	}

	if _, err := c.WaveformValue(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.SourceKind(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// WaveformValue resolves Waveform by name or by parameter index.
func (c Config) WaveformValue() (lfo.Waveform, error) {
	if n, err := strconv.Atoi(c.Waveform); err == nil {
		w := lfo.Waveform(n)
		if !w.Valid() {
			return 0, fmt.Errorf("waveform index %d out of range", n)
		}
		return w, nil
	}
	return lfo.ParseWaveform(c.Waveform)
}

// SourceKind resolves Source.
func (c Config) SourceKind() (signal.Kind, error) {
	return signal.ParseKind(c.Source)
}

// Frames returns the number of frames covered by Duration.
func (c Config) Frames() int {
	return int(c.Duration.Seconds() * float64(c.SampleRate))
}

// NewChorus builds a chorus for the configured sample rate and applies the
// chorus settings.
func (c Config) NewChorus() (*modulation.Chorus, error) {
	w, err := c.WaveformValue()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	ch := modulation.NewChorus(float64(c.SampleRate), modulation.WithSmoothingTimeMs(c.SmoothingMs))
	ch.SetParameterValue(modulation.ParamCutoff, c.Cutoff)
	ch.SetParameterValue(modulation.ParamResonance, c.Resonance)
	ch.SetParameterValue(modulation.ParamLFOWaveform, float64(w))
	ch.SetParameterValue(modulation.ParamLFOFrequency, c.LFOFreq)
	ch.SetParameterValue(modulation.ParamLFOModDepth, c.ModDepth)

	return ch, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
