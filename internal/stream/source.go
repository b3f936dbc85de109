package stream

import "github.com/cwbudde/stkchorus/dsp/core"

// Source produces one block of stereo input per call. left and right have
// equal length.
type Source interface {
	Fill(left, right []float64)
}

// FinishingSource is a Source that knows when it has run out. A Reader
// returns io.EOF once Finished reports true.
type FinishingSource interface {
	Source
	Finished() bool
}

// Loop repeats a mono signal on both channels forever.
type Loop struct {
	data []float64
	pos  int
}

// NewLoop returns a looping source over data. An empty buffer yields silence.
func NewLoop(data []float64) *Loop {
	return &Loop{data: data}
}

func (l *Loop) Fill(left, right []float64) {
	if len(l.data) == 0 {
		core.Zero(left)
		core.Zero(right)
		return
	}

	for i := range left {
		left[i] = l.data[l.pos]
		l.pos++
		if l.pos == len(l.data) {
			l.pos = 0
		}
	}
	copy(right, left)
}

// Buffer plays a stereo pair once and then outputs silence.
type Buffer struct {
	left, right []float64
	pos         int
}

// NewBuffer returns a one-shot source. The shorter channel is padded with
// silence.
func NewBuffer(left, right []float64) *Buffer {
	return &Buffer{left: left, right: right}
}

func (b *Buffer) Fill(left, right []float64) {
	core.FillFrom(left, tail(b.left, b.pos))
	core.FillFrom(right, tail(b.right, b.pos))
	b.pos += len(left)
}

// Finished reports whether both channels have been consumed.
func (b *Buffer) Finished() bool {
	return b.pos >= max(len(b.left), len(b.right))
}

func tail(buf []float64, pos int) []float64 {
	if pos >= len(buf) {
		return nil
	}
	return buf[pos:]
}
