package core

import "math"

const defaultEpsilon = 1e-12

// DefaultSampleRate is substituted wherever a sample rate is missing or invalid.
const DefaultSampleRate = 44100.0

// CentsPerOctave is the number of cents in one octave.
const CentsPerOctave = 1200.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Finite reports whether x is neither NaN nor an infinity.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SanitizeSampleRate returns sampleRate if it is positive and finite,
// otherwise DefaultSampleRate.
func SanitizeSampleRate(sampleRate float64) float64 {
	if sampleRate <= 0 || !Finite(sampleRate) {
		return DefaultSampleRate
	}

	return sampleRate
}

// SanitizeSample maps NaN and infinite samples to silence.
func SanitizeSample(x float64) float64 {
	if !Finite(x) {
		return 0
	}

	return x
}

// CentsToRatio converts a pitch offset in cents to a frequency ratio.
// 1200 cents is one octave, so CentsToRatio(1200) == 2.
func CentsToRatio(cents float64) float64 {
	return math.Exp2(cents / CentsPerOctave)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
