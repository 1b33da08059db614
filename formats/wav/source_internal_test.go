// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/podmix/audio"
)

// shortReader serves data at most step samples per call, like a reader
// hitting a buffer boundary.
type shortReader struct {
	data []int
	step int
	err  error
}

func (r *shortReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(buf.Data[:min(len(buf.Data), r.step)], r.data)
	r.data = r.data[n:]
	return n, nil
}

func newTestSource(dec pcmReader, channels int) *source {
	return &source{
		dec:        dec,
		sampleRate: 8000,
		channels:   channels,
		scale:      1 << 15,
		data:       make([]int, 4),
	}
}

func TestSource_ShortReadsKeepFrames(t *testing.T) {
	t.Parallel()

	src := newTestSource(&shortReader{data: []int{16384, -16384, 8192, -8192, 0, 0, 1}, step: 3}, 2)

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	want := []float32{0.5, -0.5, 0.25, -0.25}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	// one whole frame left plus a dangling sample
	n, err = src.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if err != io.EOF || n != 0 {
		t.Errorf("final ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ErrorPropagates(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken pipe")
	src := newTestSource(&shortReader{step: 4, err: errBroken}, 1)

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, errBroken) {
		t.Errorf("ReadSamples() error = %v, want errBroken", err)
	}
}

func TestSource_DstSmallerThanFrame(t *testing.T) {
	t.Parallel()

	src := newTestSource(&shortReader{data: []int{1, 2}, step: 2}, 2)

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_GrowsBuffer(t *testing.T) {
	t.Parallel()

	data := make([]int, 100)
	for i := range data {
		data[i] = i
	}
	src := newTestSource(&shortReader{data: data, step: 100}, 1)

	dst := make([]float32, 100)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 100 {
		t.Fatalf("ReadSamples() = %d, %v; want 100, nil", n, err)
	}
	if src.BufSize() < 100 {
		t.Errorf("BufSize() = %d, want >= 100", src.BufSize())
	}
	if dst[99] != 99.0/32768 {
		t.Errorf("dst[99] = %v, want %v", dst[99], 99.0/32768)
	}
}

func TestFullScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits   int
		want   float32
		offset int
		ok     bool
	}{
		{8, 128, 128, true},
		{12, 0, 0, false},
		{16, 32768, 0, true},
		{24, 8388608, 0, true},
		{32, 2147483648, 0, true},
		{64, 0, 0, false},
	}

	for _, tt := range tests {
		got, offset, ok := fullScale(tt.bits)
		if got != tt.want || offset != tt.offset || ok != tt.ok {
			t.Errorf("fullScale(%d) = %v, %v, %v; want %v, %v, %v",
				tt.bits, got, offset, ok, tt.want, tt.offset, tt.ok)
		}
	}
}
