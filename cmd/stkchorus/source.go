package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/stkchorus/dsp/core"
	"github.com/cwbudde/stkchorus/dsp/signal"
	"github.com/cwbudde/stkchorus/internal/config"
	"github.com/cwbudde/stkchorus/internal/stream"
)

// loadInput returns the stereo input selected by cfg: the WAV file named by
// cfg.Input, or cfg.Duration of the generated test signal on both channels.
func loadInput(cfg config.Config) (left, right []float64, err error) {
	if cfg.Input != "" {
		return readWAV(cfg.Input, cfg.SampleRate)
	}

	kind, err := cfg.SourceKind()
	if err != nil {
		return nil, nil, err
	}

	g := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(float64(cfg.SampleRate))},
		signal.WithSeed(cfg.Seed),
	)
	mono, err := g.Generate(kind, cfg.SourceFreq, cfg.SourceLevel, cfg.Frames())
	if err != nil {
		return nil, nil, err
	}
	return mono, mono, nil
}

func readWAV(path string, sampleRate int) (left, right []float64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	samples, fs, channels, err := stream.DecodeWAVFloat32LE(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if fs != sampleRate {
		return nil, nil, fmt.Errorf("%s: sample rate %d Hz, expected %d Hz (set -rate)", path, fs, sampleRate)
	}
	if channels != 1 && channels != 2 {
		return nil, nil, fmt.Errorf("%s: %d channels, want 1 or 2", path, channels)
	}

	frames := len(samples) / channels
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := range frames {
		left[i] = float64(samples[i*channels])
		right[i] = float64(samples[i*channels+channels-1])
	}
	return left, right, nil
}
