// Package modulation provides the stereo LFO-modulated lowpass chorus.
//
// Chorus runs one LFO shared by both channels. The LFO sweeps the cutoff of
// a pair of resonant lowpass filters around a smoothed base cutoff, in cents.
// Parameters are addressed by Param and described by Param.Info so hosts can
// build their own controls. ParamBridge moves parameter changes from a
// control goroutine to the audio goroutine.
package modulation
