// Package smooth provides a one-pole parameter smoother.
//
// A [Smoother] low-pass filters a control signal so that a value which jumps
// from one audio frame to the next reaches the processor as a smooth glide
// instead of a step. The response speed is given as a time constant in
// milliseconds:
//
//	a = exp(-2π / (timeMs * 0.001 * sampleRate))
//	b = 1 - a
//	z = target*b + z*a
//
// For a constant target the distance to the target shrinks by the factor a
// on every call to [Smoother.Process].
package smooth
