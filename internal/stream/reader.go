package stream

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/stkchorus/dsp/core"
	"github.com/cwbudde/stkchorus/dsp/effects/modulation"
)

const (
	// BytesPerFrame is the size of one interleaved stereo float32 frame.
	BytesPerFrame = 8

	// DefaultBlockSize is the number of frames processed per chorus call
	// unless WithBlockSize says otherwise.
	DefaultBlockSize = 512
)

// Reader pulls audio from a Source through a Chorus and encodes it as
// interleaved stereo float32 little endian, the format audio backends such
// as oto consume.
type Reader struct {
	chorus *modulation.Chorus
	bridge *modulation.ParamBridge
	source Source

	gain      float64
	blockSize int

	in, out core.StereoBlock
}

// Option configures a Reader.
type Option func(*Reader)

// WithBridge makes the Reader apply pending parameter changes from b before
// every block.
func WithBridge(b *modulation.ParamBridge) Option {
	return func(r *Reader) { r.bridge = b }
}

// WithGain sets a linear output gain. Negative or non-finite values are
// ignored.
func WithGain(gain float64) Option {
	return func(r *Reader) {
		if gain >= 0 && core.Finite(gain) {
			r.gain = gain
		}
	}
}

// WithBlockSize sets the largest number of frames processed per chorus call.
func WithBlockSize(frames int) Option {
	return func(r *Reader) {
		if frames > 0 {
			r.blockSize = frames
		}
	}
}

// NewReader returns a Reader with unity gain and the default block size.
func NewReader(c *modulation.Chorus, src Source, opts ...Option) *Reader {
	r := &Reader{
		chorus:    c,
		source:    src,
		gain:      1,
		blockSize: DefaultBlockSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.in = core.NewStereoBlock(r.blockSize)
	r.out = core.NewStereoBlock(r.blockSize)

	return r
}

// Read fills p with whole frames. Trailing bytes that do not form a frame
// are left untouched. Read runs on the audio callback and neither locks
// nor allocates; parameter changes from other goroutines arrive through
// the ParamBridge.
func (r *Reader) Read(p []byte) (int, error) {
	frames := len(p) / BytesPerFrame
	done := 0
	for done < frames {
		n := min(frames-done, r.blockSize)
		r.processBlock(p[done*BytesPerFrame:], n)
		done += n
	}

	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return frames * BytesPerFrame, io.EOF
	}
	return frames * BytesPerFrame, nil
}

func (r *Reader) processBlock(p []byte, n int) {
	if r.bridge != nil {
		r.bridge.Apply(r.chorus)
	}

	in, out := r.in.Slice(n), r.out.Slice(n)
	outL, outR := out.Left, out.Right

	r.source.Fill(in.Left, in.Right)
	r.chorus.Process(in.Left, in.Right, outL, outR, n)

	if r.gain != 1 {
		vecmath.ScaleBlock(outL, outL, r.gain)
		vecmath.ScaleBlock(outR, outR, r.gain)
	}

	for i := range n {
		binary.LittleEndian.PutUint32(p[i*BytesPerFrame:], math.Float32bits(float32(outL[i])))
		binary.LittleEndian.PutUint32(p[i*BytesPerFrame+4:], math.Float32bits(float32(outR[i])))
	}
}

// Close implements io.Closer.
func (r *Reader) Close() error { return nil }

// DecodeFloat32LE decodes little endian float32 samples. Trailing bytes are
// ignored.
func DecodeFloat32LE(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
