// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ik5/podmix/audio"
)

func mustBuffer(t testing.TB, rate int, channels ...[]float32) *audio.SampleBuffer {
	t.Helper()

	buf, err := audio.NewSampleBuffer(rate, channels)
	if err != nil {
		t.Fatalf("NewSampleBuffer() error = %v", err)
	}
	return buf
}

func TestNewSampleBuffer_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels [][]float32
	}{
		{name: "zero rate", rate: 0, channels: [][]float32{{0}}},
		{name: "negative rate", rate: -8000, channels: [][]float32{{0}}},
		{name: "no channels", rate: 8000, channels: nil},
		{name: "ragged channels", rate: 8000, channels: [][]float32{{0, 1}, {0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := audio.NewSampleBuffer(tt.rate, tt.channels)
			if !errors.Is(err, audio.ErrInvalidParameter) {
				t.Errorf("NewSampleBuffer() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestSampleBuffer_Accessors(t *testing.T) {
	t.Parallel()

	left := []float32{0.1, 0.2, 0.3, 0.4}
	right := []float32{-0.1, -0.2, -0.3, -0.4}
	buf := mustBuffer(t, 4, left, right)

	if buf.SampleRate() != 4 {
		t.Errorf("SampleRate() = %d, want 4", buf.SampleRate())
	}
	if buf.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", buf.Channels())
	}
	if buf.Len() != 4 {
		t.Errorf("Len() = %d, want 4", buf.Len())
	}
	if buf.Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", buf.Duration())
	}
	if buf.At(1, 2) != -0.3 {
		t.Errorf("At(1, 2) = %v, want -0.3", buf.At(1, 2))
	}

	// Channel hands out a copy
	ch := buf.Channel(0)
	ch[0] = 9
	if buf.At(0, 0) != 0.1 {
		t.Errorf("Channel() copy leaked into buffer: At(0, 0) = %v", buf.At(0, 0))
	}
}

func TestSampleBuffer_Interleaved(t *testing.T) {
	t.Parallel()

	buf := mustBuffer(t, 8000, []float32{1, 2, 3}, []float32{-1, -2, -3})

	got := buf.Interleaved()
	want := []float32{1, -1, 2, -2, 3, -3}

	if len(got) != len(want) {
		t.Fatalf("Interleaved() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Interleaved()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDeinterleave(t *testing.T) {
	t.Parallel()

	// trailing half frame is dropped
	buf, err := audio.Deinterleave(8000, 2, []float32{1, -1, 2, -2, 3})
	if err != nil {
		t.Fatalf("Deinterleave() error = %v", err)
	}

	if buf.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", buf.Len())
	}
	if buf.At(0, 1) != 2 || buf.At(1, 1) != -2 {
		t.Errorf("frame 1 = (%v, %v), want (2, -2)", buf.At(0, 1), buf.At(1, 1))
	}

	if _, err := audio.Deinterleave(8000, 0, nil); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Deinterleave(channels=0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestSampleBuffer_Reader(t *testing.T) {
	t.Parallel()

	buf := mustBuffer(t, 8000, []float32{1, 2, 3, 4, 5}, []float32{-1, -2, -3, -4, -5})
	src := buf.Reader()

	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Fatalf("Reader metadata = (%d, %d), want (8000, 2)", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 4) // two frames per read
	var got []float32
	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := buf.Interleaved()
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	// a second reader starts over
	n, _ := buf.Reader().ReadSamples(dst)
	if n != 4 || dst[0] != 1 {
		t.Errorf("fresh Reader() read n=%d first=%v, want n=4 first=1", n, dst[0])
	}
}

func TestNewSilentBuffer(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewSilentBuffer(44100, 2, 10)
	if err != nil {
		t.Fatalf("NewSilentBuffer() error = %v", err)
	}
	for c := range buf.Channels() {
		for i := range buf.Len() {
			if buf.At(c, i) != 0 {
				t.Fatalf("At(%d, %d) = %v, want 0", c, i, buf.At(c, i))
			}
		}
	}

	if _, err := audio.NewSilentBuffer(44100, 0, 10); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("NewSilentBuffer(channels=0) error = %v, want ErrInvalidParameter", err)
	}
}
