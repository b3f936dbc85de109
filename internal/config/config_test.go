package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/cwbudde/stkchorus/dsp/effects/modulation"
	"github.com/cwbudde/stkchorus/dsp/lfo"
	"github.com/cwbudde/stkchorus/dsp/signal"
)

var envVars = []string{
	"STKCHORUS_SAMPLE_RATE", "STKCHORUS_BLOCK_SIZE", "STKCHORUS_DURATION", "STKCHORUS_GAIN",
	"STKCHORUS_SOURCE", "STKCHORUS_SOURCE_FREQ", "STKCHORUS_SOURCE_LEVEL", "STKCHORUS_SEED",
	"STKCHORUS_INPUT", "STKCHORUS_OUTPUT", "STKCHORUS_FFT_SIZE",
	"STKCHORUS_CUTOFF", "STKCHORUS_RESONANCE", "STKCHORUS_WAVEFORM", "STKCHORUS_LFO_FREQ",
	"STKCHORUS_MOD_DEPTH", "STKCHORUS_SMOOTHING_MS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SampleRate != 48000 || cfg.BlockSize != 512 || cfg.Duration != 5*time.Second {
		t.Fatalf("host defaults = %d/%d/%v", cfg.SampleRate, cfg.BlockSize, cfg.Duration)
	}
	if cfg.Cutoff != 15000 || cfg.Resonance != 0 || cfg.LFOFreq != 1 || cfg.ModDepth != 0 {
		t.Fatalf("chorus defaults = %+v", cfg)
	}
	if cfg.Waveform != "Triangle" || cfg.Source != "noise" || cfg.FFTSize != 8192 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.SmoothingMs != modulation.DefaultSmoothingTimeMs {
		t.Fatalf("SmoothingMs = %g", cfg.SmoothingMs)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STKCHORUS_SAMPLE_RATE", "96000")
	t.Setenv("STKCHORUS_DURATION", "250ms")
	t.Setenv("STKCHORUS_CUTOFF", "800")
	t.Setenv("STKCHORUS_WAVEFORM", "square")
	t.Setenv("STKCHORUS_MOD_DEPTH", "-1200")
	t.Setenv("STKCHORUS_SEED", "7")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SampleRate != 96000 || cfg.Duration != 250*time.Millisecond {
		t.Fatalf("host = %d/%v", cfg.SampleRate, cfg.Duration)
	}
	if cfg.Cutoff != 800 || cfg.ModDepth != -1200 || cfg.Seed != 7 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if w, _ := cfg.WaveformValue(); w != lfo.Square {
		t.Fatalf("waveform = %s", w)
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("STKCHORUS_SAMPLE_RATE", "fast")
	t.Setenv("STKCHORUS_CUTOFF", "high")
	t.Setenv("STKCHORUS_DURATION", "5")

	cfg := FromEnv()
	if cfg.SampleRate != 48000 || cfg.Cutoff != 15000 || cfg.Duration != 5*time.Second {
		t.Fatalf("fallbacks not used: %+v", cfg)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STKCHORUS_CUTOFF", "800")

	cfg, err := Load(newFlagSet(), []string{"-cutoff", "2500", "-waveform", "3", "-depth", "600", "-source", "sweep"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cutoff != 2500 || cfg.ModDepth != 600 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if w, _ := cfg.WaveformValue(); w != lfo.Square {
		t.Fatalf("waveform = %s", w)
	}
	if k, _ := cfg.SourceKind(); k != signal.KindSweep {
		t.Fatalf("source = %s", k)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"block size", func(c *Config) { c.BlockSize = -1 }},
		{"duration", func(c *Config) { c.Duration = 0 }},
		{"gain", func(c *Config) { c.Gain = -1 }},
		{"fft size", func(c *Config) { c.FFTSize = 1000 }},
		{"waveform name", func(c *Config) { c.Waveform = "wobble" }},
		{"waveform index", func(c *Config) { c.Waveform = "5" }},
		{"source", func(c *Config) { c.Source = "pink" }},
	}

	for _, tt := range tests {
		cfg := FromEnv()
		tt.mod(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", tt.name, err)
		}
	}
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	clearEnv(t)
	if _, err := Load(newFlagSet(), []string{"-volume", "3"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestNewChorusAppliesSettings(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	cfg.SampleRate = 44100
	cfg.Cutoff = 30000
	cfg.Resonance = 0.25
	cfg.Waveform = "Exponential"
	cfg.LFOFreq = 4
	cfg.ModDepth = 300

	ch, err := cfg.NewChorus()
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	if ch.SampleRate() != 44100 {
		t.Fatalf("SampleRate() = %g", ch.SampleRate())
	}
	want := map[modulation.Param]float64{
		modulation.ParamCutoff:       20000,
		modulation.ParamResonance:    0.25,
		modulation.ParamLFOWaveform:  float64(lfo.Exponential),
		modulation.ParamLFOFrequency: 4,
		modulation.ParamLFOModDepth:  300,
	}
	for p, v := range want {
		if got := ch.ParameterValue(p); got != v {
			t.Fatalf("%s = %g, want %g", p, got, v)
		}
	}
}

func TestFrames(t *testing.T) {
	cfg := Config{SampleRate: 48000, Duration: 250 * time.Millisecond}
	if got := cfg.Frames(); got != 12000 {
		t.Fatalf("Frames() = %d, want 12000", got)
	}
}
