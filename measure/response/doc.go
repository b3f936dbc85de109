// Package response measures magnitude responses from impulse responses and
// rendered signals using FFT analysis.
package response
