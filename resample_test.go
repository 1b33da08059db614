// SPDX-License-Identifier: EPL-2.0

package podmix

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/internal/audiotest"
)

func TestConform_ResampleAndDownmix(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440.0)

	buf, err := Conform(src, 8000, true)
	if err != nil {
		t.Fatalf("Conform() error = %v", err)
	}

	if buf.SampleRate() != 8000 || buf.Channels() != 1 {
		t.Fatalf("Conform() = %d Hz, %d ch; want 8000 Hz, 1 ch", buf.SampleRate(), buf.Channels())
	}

	// one second at the new rate
	if buf.Len() != 8000 {
		t.Errorf("Conform() got %d frames, want 8000", buf.Len())
	}
}

func TestConform_KeepsLayout(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(16000, 2, 1000, func(frame, ch int) float32 {
		return float32(ch) - 0.5
	})

	buf, err := Conform(src, 16000, false)
	if err != nil {
		t.Fatalf("Conform() error = %v", err)
	}

	if buf.Len() != 1000 || buf.Channels() != 2 {
		t.Fatalf("Conform() = %d frames x %d ch, want 1000 x 2", buf.Len(), buf.Channels())
	}
	// same rate means no resampler, so samples pass through untouched
	if buf.At(0, 500) != -0.5 || buf.At(1, 500) != 0.5 {
		t.Errorf("samples changed: (%v, %v)", buf.At(0, 500), buf.At(1, 500))
	}
}

func TestConform_MonoAverage(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 100, func(_, ch int) float32 {
		if ch == 0 {
			return 0.8
		}
		return 0.2
	})

	buf, err := Conform(src, 8000, true)
	if err != nil {
		t.Fatalf("Conform() error = %v", err)
	}

	for i := range buf.Len() {
		if math.Abs(float64(buf.At(0, i))-0.5) > 1e-6 {
			t.Fatalf("frame %d = %v, want 0.5", i, buf.At(0, i))
		}
	}
}

func TestConform_EmptySource(t *testing.T) {
	t.Parallel()

	buf, err := Conform(audiotest.NewSilentSource(44100, 2, 0), 8000, true)
	if err != nil {
		t.Fatalf("Conform() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Conform() got %d frames, want 0", buf.Len())
	}
}

func TestConform_VariousRates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
	}{
		{"44.1kHz to 8kHz", 44100, 8000},
		{"48kHz to 16kHz", 48000, 16000},
		{"8kHz to 16kHz (upsample)", 8000, 16000},
		{"22.05kHz to 48kHz", 22050, 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 2, tt.srcRate, 440.0)

			buf, err := Conform(src, tt.dstRate, false)
			if err != nil {
				t.Fatalf("Conform() error = %v", err)
			}

			if buf.Len() != tt.dstRate {
				t.Errorf("Conform() got %d frames, want %d", buf.Len(), tt.dstRate)
			}
		})
	}
}

func TestConform_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Conform(audiotest.NewSilentSource(8000, 1, 10), 0, false); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Conform(rate 0) error = %v, want ErrInvalidParameter", err)
	}

	src := audiotest.NewSineSource(8000, 1, 8000, 100).FailAfter(100)
	if _, err := Conform(src, 16000, false); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("Conform(failing source) error = %v, want ErrInjected", err)
	}
}

func BenchmarkConform(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(44100, 2, 44100, 440.0)
		_, _ = Conform(src, 8000, true)
	}
}

func BenchmarkConform_Upsample(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(8000, 2, 8000, 440.0)
		_, _ = Conform(src, 44100, false)
	}
}
