// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic sources shared by tests. It mirrors the
// audio.Source method set without importing audio, so audio's own tests can
// use it too.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by a MockSource configured with FailAfter.
var ErrInjected = errors.New("audiotest: injected read failure")

// Waveform yields the sample at frame index for a channel.
type Waveform func(frame, channel int) float32

// MockSource generates frames from a Waveform.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	pos        int // frames generated so far
	waveform   Waveform

	failAfter int // frames after which reads fail; < 0 never
	closed    bool
}

// NewMockSource creates a source of frames frames.
func NewMockSource(sampleRate, channels, frames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
		failAfter:  -1,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return SineAt(frame, sampleRate, frequency)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// FailAfter makes ReadSamples return ErrInjected once frames frames were
// produced.
func (m *MockSource) FailAfter(frames int) *MockSource {
	m.failAfter = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source to frame 0.
func (m *MockSource) Reset() {
	m.pos = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.pos >= m.failAfter {
		return 0, ErrInjected
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	if m.failAfter >= 0 {
		n = min(n, m.failAfter-m.pos)
	}

	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.pos+f, ch)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// SineAt is sin(2π·frequency·frame/sampleRate).
func SineAt(frame, sampleRate int, frequency float64) float32 {
	return float32(math.Sin(2 * math.Pi * frequency * float64(frame) / float64(sampleRate)))
}

// Ramp returns n values rising linearly from start by step.
func Ramp(n int, start, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = start + float32(i)*step
	}
	return out
}
