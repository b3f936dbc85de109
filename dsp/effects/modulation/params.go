package modulation

import (
	"fmt"
	"slices"

	"github.com/cwbudde/stkchorus/dsp/filter/lowpass"
	"github.com/cwbudde/stkchorus/dsp/lfo"
)

// Param indexes the chorus parameters in host order.
type Param int

const (
	ParamCutoff Param = iota
	ParamResonance
	ParamLFOWaveform
	ParamLFOFrequency
	ParamLFOModDepth

	// ParamCount is the number of parameters.
	ParamCount
)

// ParamHints describes how a host should present a parameter.
type ParamHints uint8

const (
	HintAutomatable ParamHints = 1 << iota
	HintInteger
	HintLogarithmic
)

// ParamInfo is the host-facing description of a parameter.
type ParamInfo struct {
	Name    string
	Symbol  string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Hints   ParamHints

	// Labels names the values of enumerated parameters, indexed by value.
	Labels []string
}

var paramInfos = [ParamCount]ParamInfo{
	ParamCutoff: {
		Name: "Cutoff", Symbol: "cutoff", Unit: "Hz",
		Min: lowpass.MinCutoffHz, Max: lowpass.MaxCutoffHz, Default: 15000,
		Hints: HintAutomatable | HintInteger | HintLogarithmic,
	},
	ParamResonance: {
		Name: "Resonance", Symbol: "resonance",
		Min: lowpass.MinResonance, Max: lowpass.MaxResonance, Default: 0,
		Hints: HintAutomatable,
	},
	ParamLFOWaveform: {
		Name: "LFO Waveform", Symbol: "lfowaveform",
		Min: 0, Max: float64(len(lfo.Waveforms()) - 1), Default: float64(lfo.Triangle),
		Hints:  HintAutomatable | HintInteger,
		Labels: waveformLabels(),
	},
	ParamLFOFrequency: {
		Name: "LFO Frequency", Symbol: "lfofreq", Unit: "Hz",
		Min: 0.01, Max: 25, Default: 1,
		Hints: HintAutomatable | HintLogarithmic,
	},
	ParamLFOModDepth: {
		Name: "LFO Mod Depth", Symbol: "lfomoddepth", Unit: "ct",
		Min: -10800, Max: 10800, Default: 0,
		Hints: HintAutomatable | HintInteger,
	},
}

func waveformLabels() []string {
	ws := lfo.Waveforms()
	labels := make([]string, len(ws))
	for i, w := range ws {
		labels[i] = w.String()
	}
	return labels
}

// Valid reports whether p is a parameter index.
func (p Param) Valid() bool { return p >= 0 && p < ParamCount }

// Info returns the description of p. Invalid indices return the zero value.
func (p Param) Info() ParamInfo {
	if !p.Valid() {
		return ParamInfo{}
	}
	info := paramInfos[p]
	info.Labels = slices.Clone(info.Labels)
	return info
}

func (p Param) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramInfos[p].Symbol
}

// ParseParam resolves a parameter by symbol.
func ParseParam(symbol string) (Param, error) {
	for p := range ParamCount {
		if paramInfos[p].Symbol == symbol {
			return p, nil
		}
	}
	return 0, fmt.Errorf("modulation: unknown parameter %q", symbol)
}

// ProgramCount is the number of factory programs.
const ProgramCount = 1

var programNames = [ProgramCount]string{"Default"}

// ProgramName returns the name of program index.
func ProgramName(index int) (string, bool) {
	if index < 0 || index >= ProgramCount {
		return "", false
	}
	return programNames[index], true
}
