package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/stkchorus/dsp/core"
	"github.com/cwbudde/stkchorus/dsp/effects/modulation"
	"github.com/cwbudde/stkchorus/dsp/filter/biquad"
	"github.com/cwbudde/stkchorus/dsp/filter/lowpass"
	"github.com/cwbudde/stkchorus/internal/config"
	"github.com/cwbudde/stkchorus/measure/response"
)

func runAnalyze(cfg config.Config) error {
	fs := float64(cfg.SampleRate)

	f := lowpass.New(fs)
	f.SetCutoff(cfg.Cutoff)
	f.SetResonance(cfg.Resonance)

	ir := f.ImpulseResponse(cfg.FFTSize)
	static, err := response.Analyze(ir, fs, cfg.FFTSize)
	if err != nil {
		return err
	}

	var ref biquad.Section
	ref.SetCoefficients(f.Coefficients())
	deviation := 0.0
	for i, h := range ref.ImpulseResponse(len(ir)) {
		deviation = math.Max(deviation, math.Abs(h-ir[i]))
	}

	measured, err := measureTransfer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("cutoff %.1f Hz, resonance %.2f (Q %.2f), %d Hz, FFT %d\n",
		f.Cutoff(), f.Resonance(), f.Q(), cfg.SampleRate, cfg.FFTSize)
	if hz, err := static.CutoffHz(3.0103); err == nil {
		fmt.Printf("-3 dB point: %.1f Hz\n", hz)
	}
	peakHz, peakDB := static.Peak()
	fmt.Printf("peak: %.2f dB at %.1f Hz\n", peakDB, peakHz)
	fmt.Printf("deviation from RBJ design: %.2e\n", deviation)

	if depth := cfg.ModDepth; depth != 0 {
		lo := core.Clamp(f.Cutoff()*core.CentsToRatio(-math.Abs(depth)), lowpass.MinCutoffHz, lowpass.MaxCutoffHz)
		hi := core.Clamp(f.Cutoff()*core.CentsToRatio(math.Abs(depth)), lowpass.MinCutoffHz, lowpass.MaxCutoffHz)
		fmt.Printf("modulated cutoff range: %.1f .. %.1f Hz\n", lo, hi)
	}
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Frequency [Hz]\tFilter [dB]\tMeasured [dB]\t\n")
	fmt.Fprintf(tw, "--------------\t-----------\t-------------\t\n")
	for hz := 31.25; hz < fs/2; hz *= 2 {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t\n", hz, static.MagnitudeDBAt(hz), measured(hz))
	}
	return tw.Flush()
}

// measureTransfer runs noise through a chorus built from cfg and returns the
// averaged output/input level ratio in dB as a function of frequency.
func measureTransfer(cfg config.Config) (func(hz float64) float64, error) {
	fs := float64(cfg.SampleRate)

	cfg.Source = "noise"
	cfg.Input = ""
	left, right, err := loadInput(cfg)
	if err != nil {
		return nil, err
	}

	chorus, err := cfg.NewChorus()
	if err != nil {
		return nil, err
	}
	outL := make([]float64, len(left))
	outR := make([]float64, len(right))
	processBlocks(chorus, left, right, outL, outR, cfg.BlockSize)

	in, err := response.Spectrum(left, fs, cfg.FFTSize)
	if err != nil {
		return nil, err
	}
	out, err := response.Spectrum(outL, fs, cfg.FFTSize)
	if err != nil {
		return nil, err
	}

	return func(hz float64) float64 {
		return out.MagnitudeDBAt(hz) - in.MagnitudeDBAt(hz)
	}, nil
}

func processBlocks(c *modulation.Chorus, inL, inR, outL, outR []float64, blockSize int) {
	for start := 0; start < len(inL); start += blockSize {
		end := min(start+blockSize, len(inL))
		c.Process(inL[start:end], inR[start:end], outL[start:end], outR[start:end], end-start)
	}
}
