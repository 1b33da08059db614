// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/podmix/audio"
)

// mockMP3Reader serves 16-bit stereo PCM in reads of at most step bytes,
// which may split a sample or a frame the way go-mp3 frame boundaries do.
type mockMP3Reader struct {
	sampleRate int
	pcm        []byte
	step       int
	err        error
}

func newMockReader(step int, samples ...int16) *mockMP3Reader {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return &mockMP3Reader{sampleRate: 44100, pcm: pcm, step: step, err: io.EOF}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if len(m.pcm) == 0 {
		return 0, m.err
	}
	n := copy(buf[:min(len(buf), m.step)], m.pcm)
	m.pcm = m.pcm[n:]
	return n, nil
}

func newSource(r *mockMP3Reader) *source {
	return &source{dec: r, sampleRate: r.sampleRate, buf: make([]byte, 16)}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("This is not MP3 data"),
		"empty": {},
	} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))

		var decErr *audio.DecodeError
		if !errors.As(err, &decErr) {
			t.Errorf("%s: Decode() error = %v, want *audio.DecodeError", name, err)
			continue
		}
		if decErr.Format != audio.FormatMP3 {
			t.Errorf("%s: Format = %q, want %q", name, decErr.Format, audio.FormatMP3)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(newMockReader(4))

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 8 {
		t.Errorf("BufSize() = %d, want 8", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(newMockReader(3, 0, 16384, 32767, -16384, -32768, 8192, -8192, 0))

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 8 {
		t.Fatalf("ReadSamples() = %d, %v; want 8, nil", n, err)
	}

	want := []float32{0, 0.5, 32767.0 / 32768, -0.5, -1, 0.25, -0.25, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_PartialTail(t *testing.T) {
	t.Parallel()

	// three whole frames plus a dangling left sample
	src := newSource(newMockReader(5, 1, 2, 3, 4, 5, 6, 7))

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 6 {
		t.Fatalf("ReadSamples() = %d, %v; want 6, nil", n, err)
	}
	if dst[5] != 6.0/32768 {
		t.Errorf("dst[5] = %v, want %v", dst[5], 6.0/32768)
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_OddDst(t *testing.T) {
	t.Parallel()

	src := newSource(newMockReader(64, 1, 2, 3, 4))

	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(len 1) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	errCorrupt := errors.New("corrupt frame")
	r := newMockReader(4, 100, 200)
	r.err = errCorrupt
	src := newSource(r)

	n, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, errCorrupt) {
		t.Errorf("ReadSamples() error = %v, want errCorrupt", err)
	}
	if n != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n)
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*5000)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	src := newSource(newMockReader(1152*4, samples...))

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Len() != 5000 || buf.Channels() != 2 {
		t.Fatalf("ReadAll() = %d frames x %d ch, want 5000 x 2", buf.Len(), buf.Channels())
	}
	if got, want := buf.At(1, 4999), float32(9999%1000)/32768; got != want {
		t.Errorf("At(1, 4999) = %v, want %v", got, want)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 2*44100)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newSource(newMockReader(1152*4, samples...))
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
