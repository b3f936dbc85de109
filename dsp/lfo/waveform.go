package lfo

import (
	"fmt"
	"strings"
)

// Waveform selects the oscillator shape. The numeric values are the
// parameter values hosts use for the waveform selector.
type Waveform int

const (
	Triangle Waveform = iota
	Sine
	Sawtooth
	Square
	Exponential

	waveformCount
)

var waveformNames = [waveformCount]string{
	Triangle:    "Triangle",
	Sine:        "Sine",
	Sawtooth:    "Sawtooth",
	Square:      "Square",
	Exponential: "Exponential",
}

// Waveforms returns all waveforms in parameter order.
func Waveforms() []Waveform {
	return []Waveform{Triangle, Sine, Sawtooth, Square, Exponential}
}

// Valid reports whether w names a known shape.
func (w Waveform) Valid() bool {
	return w >= 0 && w < waveformCount
}

func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform resolves a case-insensitive waveform label.
func ParseWaveform(name string) (Waveform, error) {
	for i, label := range waveformNames {
		if strings.EqualFold(name, label) {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("lfo: unknown waveform %q", name)
}
