package core

// EnsureLen returns buf resized to n, reallocating only when its capacity is
// too small. Contents are not preserved across a reallocation.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// FillFrom copies src into dst, zeroes whatever part of dst src does not
// cover, and returns the number of samples taken from src.
func FillFrom(dst, src []float64) int {
	n := copy(dst, src)
	clear(dst[n:])
	return n
}

// StereoBlock is a pair of channel buffers of equal length.
type StereoBlock struct {
	Left  []float64
	Right []float64
}

// NewStereoBlock allocates a block of n frames.
func NewStereoBlock(n int) StereoBlock {
	var b StereoBlock
	b.Resize(n)
	return b
}

// Resize sets both channels to n frames, reusing capacity.
func (b *StereoBlock) Resize(n int) {
	b.Left = EnsureLen(b.Left, n)
	b.Right = EnsureLen(b.Right, n)
}

// Frames returns the number of frames in the block.
func (b StereoBlock) Frames() int { return min(len(b.Left), len(b.Right)) }

// Slice returns a view of the first n frames.
func (b StereoBlock) Slice(n int) StereoBlock {
	n = min(max(n, 0), b.Frames())
	return StereoBlock{Left: b.Left[:n], Right: b.Right[:n]}
}
