package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/cwbudde/stkchorus/internal/config"
	"github.com/cwbudde/stkchorus/internal/stream"
)

func runRender(cfg config.Config) error {
	left, right, err := loadInput(cfg)
	if err != nil {
		return err
	}

	chorus, err := cfg.NewChorus()
	if err != nil {
		return err
	}

	frames := len(left)
	r := stream.NewReader(chorus, stream.NewBuffer(left, right),
		stream.WithBlockSize(cfg.BlockSize),
		stream.WithGain(cfg.Gain),
	)

	raw := make([]byte, frames*stream.BytesPerFrame)
	if _, err := io.ReadFull(r, raw); err != nil {
		return fmt.Errorf("process: %w", err)
	}
	samples := stream.DecodeFloat32LE(raw)

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := stream.WriteWAV(f, samples, cfg.SampleRate, 2); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(float64(s)))
	}
	log.Printf("wrote %s: %d frames (%.2f s) at %d Hz, peak %.2f dBFS",
		cfg.Output, frames, float64(frames)/float64(cfg.SampleRate), cfg.SampleRate, 20*math.Log10(peak))

	return nil
}
