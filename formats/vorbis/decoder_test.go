// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/podmix/audio"
)

// mockOggReader hands out at most packet values per Read, always whole
// frames, like oggvorbis does at packet boundaries.
type mockOggReader struct {
	sampleRate int
	channels   int
	data       []float32
	packet     int
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if len(m.data) == 0 {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}
	n := min(len(p), m.packet, len(m.data))
	n -= n % m.channels
	copy(p, m.data[:n])
	m.data = m.data[n:]
	return n, nil
}

func newSource(m *mockOggReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":      []byte("This is not an Ogg stream"),
		"empty":     {},
		"bare page": []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00"),
	} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))

		var decErr *audio.DecodeError
		if !errors.As(err, &decErr) {
			t.Errorf("%s: Decode() error = %v, want *audio.DecodeError", name, err)
			continue
		}
		if decErr.Format != audio.FormatVorbis {
			t.Errorf("%s: Format = %q, want %q", name, decErr.Format, audio.FormatVorbis)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{sampleRate: 48000, channels: 2, packet: 512})

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Errorf("source = %d Hz, %d ch; want 48000 Hz, 2 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}

	odd := newSource(&mockOggReader{sampleRate: 48000, channels: 3, packet: 512})
	if odd.BufSize()%3 != 0 {
		t.Errorf("BufSize() = %d for 3 channels, want a multiple of 3", odd.BufSize())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	src := newSource(&mockOggReader{sampleRate: 44100, channels: 2, data: data, packet: 4})

	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	for i := range n {
		if dst[i] != data[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], data[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, nil", n, err)
	}
	if dst[1] != -0.3 {
		t.Errorf("dst[1] = %v, want -0.3", dst[1])
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_InvalidDst(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{sampleRate: 44100, channels: 2, data: []float32{1, 1}, packet: 2})

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(len 1) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	errCorrupt := errors.New("corrupt packet")
	src := newSource(&mockOggReader{sampleRate: 44100, channels: 1, packet: 8, err: errCorrupt})

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, errCorrupt) {
		t.Errorf("ReadSamples() error = %v, want errCorrupt", err)
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	data := make([]float32, 2*3000)
	for i := range data {
		data[i] = float32(i%7) / 10
	}
	src := newSource(&mockOggReader{sampleRate: 22050, channels: 2, data: data, packet: 700})

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Len() != 3000 || buf.SampleRate() != 22050 {
		t.Fatalf("ReadAll() = %d frames @ %d, want 3000 @ 22050", buf.Len(), buf.SampleRate())
	}
	if got, want := buf.At(0, 2999), data[2*2999]; got != want {
		t.Errorf("At(0, 2999) = %v, want %v", got, want)
	}
}
