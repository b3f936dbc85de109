package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrInvalidFormat = errors.New("stream: sample rate and channel count must be > 0")
	ErrNotWAV        = errors.New("stream: not a float32 WAV file")
)

const wavHeaderSize = 44

// EncodeWAVFloat32LE encodes interleaved samples as an IEEE float WAV file.
func EncodeWAVFloat32LE(samples []float32, sampleRate, channels int) ([]byte, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidFormat
	}

	dataSize := len(samples) * 4
	out := make([]byte, wavHeaderSize+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*channels*4))
	binary.LittleEndian.PutUint16(out[32:], uint16(channels*4))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[wavHeaderSize+i*4:], math.Float32bits(s))
	}

	return out, nil
}

// WriteWAV encodes samples and writes them to w.
func WriteWAV(w io.Writer, samples []float32, sampleRate, channels int) error {
	data, err := EncodeWAVFloat32LE(samples, sampleRate, channels)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("stream: write wav: %w", err)
	}
	return nil
}

// DecodeWAVFloat32LE parses a file written by EncodeWAVFloat32LE.
func DecodeWAVFloat32LE(data []byte) (samples []float32, sampleRate, channels int, err error) {
	if len(data) < wavHeaderSize ||
		string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" ||
		string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		return nil, 0, 0, ErrNotWAV
	}
	if binary.LittleEndian.Uint16(data[20:]) != 3 || binary.LittleEndian.Uint16(data[34:]) != 32 {
		return nil, 0, 0, fmt.Errorf("%w: unsupported sample format", ErrNotWAV)
	}

	channels = int(binary.LittleEndian.Uint16(data[22:]))
	sampleRate = int(binary.LittleEndian.Uint32(data[24:]))
	size := int(binary.LittleEndian.Uint32(data[40:]))
	if size > len(data)-wavHeaderSize {
		return nil, 0, 0, fmt.Errorf("%w: truncated data chunk", ErrNotWAV)
	}

	return DecodeFloat32LE(data[wavHeaderSize : wavHeaderSize+size]), sampleRate, channels, nil
}
