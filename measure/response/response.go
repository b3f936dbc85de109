package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/stkchorus/dsp/core"
)

var (
	ErrEmptyInput        = errors.New("response: empty input")
	ErrInvalidSampleRate = errors.New("response: sample rate must be > 0")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two >= 2")
	ErrNoCrossing        = errors.New("response: magnitude never crosses the level")
)

// Response is a one-sided magnitude spectrum.
type Response struct {
	SampleRate float64
	FFTSize    int

	// Magnitude holds |H(k)| for bins 0..FFTSize/2.
	Magnitude []float64
}

// Analyze computes the magnitude response of an impulse response. The input
// is zero padded or truncated to fftSize.
func Analyze(ir []float64, sampleRate float64, fftSize int) (*Response, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyInput
	}
	if err := validate(sampleRate, fftSize); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i := 0; i < len(ir) && i < fftSize; i++ {
		in[i] = complex(ir[i], 0)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward fft: %w", err)
	}

	return &Response{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Magnitude:  magnitude(out[:fftSize/2+1]),
	}, nil
}

// Spectrum returns the averaged amplitude spectrum of x using Hann-windowed
// frames of fftSize with 50% overlap. A sine of amplitude A at a bin centre
// reads A.
func Spectrum(x []float64, sampleRate float64, fftSize int) (*Response, error) {
	if err := validate(sampleRate, fftSize); err != nil {
		return nil, err
	}
	if len(x) < fftSize {
		return nil, fmt.Errorf("%w: need %d samples, have %d", ErrEmptyInput, fftSize, len(x))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	win := hann(fftSize)
	frame := make([]float64, fftSize)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	bins := fftSize/2 + 1
	sum := make([]float64, bins)

	hop := fftSize / 2
	frames := 0
	for start := 0; start+fftSize <= len(x); start += hop {
		vecmath.MulBlock(frame, x[start:start+fftSize], win)
		for i, v := range frame {
			in[i] = complex(v, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("response: forward fft: %w", err)
		}
		vecmath.AddBlockInPlace(sum, magnitude(out[:bins]))
		frames++
	}

	// Hann coherent gain is 1/2; one-sided bins carry half the amplitude.
	vecmath.ScaleBlock(sum, sum, 4/float64(fftSize*frames))

	return &Response{SampleRate: sampleRate, FFTSize: fftSize, Magnitude: sum}, nil
}

func validate(sampleRate float64, fftSize int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return ErrInvalidSampleRate
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	return nil
}

func magnitude(bins []complex128) []float64 {
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	out := make([]float64, len(bins))
	vecmath.Magnitude(out, re, im)
	return out
}

// hann returns a periodic Hann window.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// BinHz returns the centre frequency of bin k.
func (r *Response) BinHz(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// MagnitudeAt returns the linear magnitude at hz, interpolating between bins.
// Frequencies outside [0, Nyquist] are clamped.
func (r *Response) MagnitudeAt(hz float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}

	pos := core.Clamp(hz*float64(r.FFTSize)/r.SampleRate, 0, float64(len(r.Magnitude)-1))
	k := int(pos)
	if k >= len(r.Magnitude)-1 {
		return r.Magnitude[len(r.Magnitude)-1]
	}
	frac := pos - float64(k)
	return r.Magnitude[k] + frac*(r.Magnitude[k+1]-r.Magnitude[k])
}

// MagnitudeDBAt returns MagnitudeAt in dB.
func (r *Response) MagnitudeDBAt(hz float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(hz))
}

// Peak returns the frequency and level in dB of the largest bin.
func (r *Response) Peak() (hz, db float64) {
	if len(r.Magnitude) == 0 {
		return 0, math.Inf(-1)
	}

	best := 0
	for k, m := range r.Magnitude {
		if m > r.Magnitude[best] {
			best = k
		}
	}
	return r.BinHz(best), core.LinearToDB(r.Magnitude[best])
}

// CutoffHz returns the first frequency above the peak where the response
// falls dropDB below the DC level. The crossing is interpolated linearly in
// dB between bins.
func (r *Response) CutoffHz(dropDB float64) (float64, error) {
	if len(r.Magnitude) < 2 {
		return 0, ErrEmptyInput
	}

	ref := core.LinearToDB(r.Magnitude[0]) - dropDB
	peak, _ := r.Peak()
	start := int(peak * float64(r.FFTSize) / r.SampleRate)

	prev := core.LinearToDB(r.Magnitude[start])
	for k := start + 1; k < len(r.Magnitude); k++ {
		cur := core.LinearToDB(r.Magnitude[k])
		if prev >= ref && cur < ref {
			frac := (prev - ref) / (prev - cur)
			return r.BinHz(k-1) + frac*r.BinHz(1), nil
		}
		prev = cur
	}
	return 0, ErrNoCrossing
}
