// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"time"
)

// SampleBuffer is an in-memory multi-channel signal held as one float32
// slice per channel. It is never modified after construction; every
// operation that changes audio returns a new buffer.
type SampleBuffer struct {
	sampleRate int
	data       [][]float32
	frames     int
}

// NewSampleBuffer wraps per-channel sample slices. The buffer takes
// ownership of channels; the caller must not modify them afterwards.
func NewSampleBuffer(sampleRate int, channels [][]float32) (*SampleBuffer, error) {
	if sampleRate <= 0 {
		return nil, invalidParam("sample rate must be > 0, got %d", sampleRate)
	}
	if len(channels) == 0 {
		return nil, invalidParam("at least one channel is required")
	}

	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return nil, invalidParam("channel %d has %d frames, want %d", c, len(ch), frames)
		}
	}

	return &SampleBuffer{
		sampleRate: sampleRate,
		data:       channels,
		frames:     frames,
	}, nil
}

// NewSilentBuffer returns a zero-filled buffer.
func NewSilentBuffer(sampleRate, channels, frames int) (*SampleBuffer, error) {
	if channels <= 0 {
		return nil, invalidParam("channel count must be > 0, got %d", channels)
	}
	if frames < 0 {
		return nil, invalidParam("frame count must be >= 0, got %d", frames)
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return NewSampleBuffer(sampleRate, data)
}

// Deinterleave splits frame-major samples into a SampleBuffer.
// A trailing partial frame is dropped.
func Deinterleave(sampleRate, channels int, samples []float32) (*SampleBuffer, error) {
	if channels <= 0 {
		return nil, invalidParam("channel count must be > 0, got %d", channels)
	}

	frames := len(samples) / channels
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			data[c][f] = samples[base+c]
		}
	}

	return NewSampleBuffer(sampleRate, data)
}

func (b *SampleBuffer) SampleRate() int { return b.sampleRate }
func (b *SampleBuffer) Channels() int   { return len(b.data) }

// Len is the number of frames.
func (b *SampleBuffer) Len() int { return b.frames }

// At returns the sample of channel c at frame i.
func (b *SampleBuffer) At(c, i int) float32 { return b.data[c][i] }

// Channel returns a copy of channel c.
func (b *SampleBuffer) Channel(c int) []float32 {
	out := make([]float32, b.frames)
	copy(out, b.data[c])
	return out
}

// Duration of the buffer at its sample rate.
func (b *SampleBuffer) Duration() time.Duration {
	return time.Duration(b.frames) * time.Second / time.Duration(b.sampleRate)
}

// Interleaved returns the samples frame-major: frame 0 all channels, then
// frame 1, and so on.
func (b *SampleBuffer) Interleaved() []float32 {
	channels := len(b.data)
	out := make([]float32, b.frames*channels)

	if channels == 1 {
		copy(out, b.data[0])
		return out
	}

	for f := range b.frames {
		base := f * channels
		for c := range channels {
			out[base+c] = b.data[c][f]
		}
	}
	return out
}

// Reader streams the buffer as a Source. Each call returns an independent
// reader starting at frame 0.
func (b *SampleBuffer) Reader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *SampleBuffer
	pos int // next frame
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.data) }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.buf.frames {
		return 0, io.EOF
	}

	channels := len(s.buf.data)
	frames := min(len(dst)/channels, s.buf.frames-s.pos)

	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = s.buf.data[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.frames {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
