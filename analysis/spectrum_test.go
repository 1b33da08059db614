// SPDX-License-Identifier: EPL-2.0

package analysis_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ik5/podmix/analysis"
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/internal/audiotest"
	"github.com/ik5/podmix/tone"
)

func sine(freq float64, rate, frames int, amp float64) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestPureTone432_Peak(t *testing.T) {
	t.Parallel()

	buf, err := tone.Generate(tone.Pure{FrequencyHz: 432}, time.Second, 44100)
	if err != nil {
		t.Fatal(err)
	}

	spec, err := analysis.Spectrum(buf.Channel(0), buf.SampleRate())
	if err != nil {
		t.Fatalf("Spectrum() error = %v", err)
	}

	hz, mag := spec.Peak()
	if math.Abs(hz-432) > 1 {
		t.Errorf("peak = %.3f Hz, want 432 ± 1", hz)
	}

	peakPower := mag * mag
	if other := spec.MaxPowerOutside(427, 437); other*10 > peakPower {
		t.Errorf("strongest bin outside 427-437 Hz has power %g, peak %g; want at least 10x apart", other, peakPower)
	}
}

func TestBinauralTone_ChannelsIndependent(t *testing.T) {
	t.Parallel()

	buf, err := tone.Generate(tone.Binaural{BaseHz: 200, BeatOffsetHz: 40}, time.Second, 44100)
	if err != nil {
		t.Fatal(err)
	}

	for c, want := range []float64{200, 240} {
		hz, err := analysis.PeakFrequency(buf.Channel(c), buf.SampleRate())
		if err != nil {
			t.Fatalf("PeakFrequency(ch %d) error = %v", c, err)
		}
		if math.Abs(hz-want) > 1 {
			t.Errorf("channel %d peak = %.3f Hz, want %v ± 1", c, hz, want)
		}
	}
}

func TestPresets_PeakFrequencies(t *testing.T) {
	t.Parallel()

	for _, p := range tone.Presets() {
		buf, err := tone.Generate(p.Spec, 500*time.Millisecond, 48000)
		if err != nil {
			t.Fatalf("%s: Generate() error = %v", p.Name, err)
		}

		left, right := p.Spec.Frequencies()
		for c, want := range []float64{left, right} {
			hz, err := analysis.PeakFrequency(buf.Channel(c), buf.SampleRate())
			if err != nil {
				t.Fatalf("%s: PeakFrequency() error = %v", p.Name, err)
			}
			if math.Abs(hz-want) > 1 {
				t.Errorf("%s channel %d peak = %.3f Hz, want %v ± 1", p.Name, c, hz, want)
			}
		}
	}
}

func TestSpectrum_LongInputIsSegmented(t *testing.T) {
	t.Parallel()

	samples := sine(1000, 16000, 10*16000, 0.5)

	spec, err := analysis.Spectrum(samples, 16000)
	if err != nil {
		t.Fatalf("Spectrum() error = %v", err)
	}
	if spec.FFTSize != analysis.MaxFFTSize {
		t.Errorf("FFTSize = %d, want %d", spec.FFTSize, analysis.MaxFFTSize)
	}

	hz, mag := spec.Peak()
	if math.Abs(hz-1000) > 0.5 {
		t.Errorf("peak = %.3f Hz, want 1000 ± 0.5", hz)
	}
	if mag < 0.4 || mag > 0.51 {
		t.Errorf("peak magnitude = %.3f, want about 0.5", mag)
	}
}

func TestSpectrum_Amplitude(t *testing.T) {
	t.Parallel()

	// 1024 Hz sits exactly on a bin of a 4096-point transform at 8192 Hz.
	spec, err := analysis.Spectrum(sine(1024, 8192, 4096, 1), 8192)
	if err != nil {
		t.Fatalf("Spectrum() error = %v", err)
	}

	if spec.FFTSize != 4096 || len(spec.Bins) != 2049 {
		t.Fatalf("FFTSize = %d, bins = %d; want 4096, 2049", spec.FFTSize, len(spec.Bins))
	}
	if spec.BinHz() != 2 {
		t.Errorf("BinHz() = %v, want 2", spec.BinHz())
	}

	hz, mag := spec.Peak()
	if math.Abs(hz-1024) > 0.01 {
		t.Errorf("peak = %v Hz, want 1024", hz)
	}
	if math.Abs(mag-1) > 0.01 {
		t.Errorf("peak magnitude = %v, want 1", mag)
	}
}

func TestSpectrum_BandPower(t *testing.T) {
	t.Parallel()

	samples := sine(500, 8000, 8000, 1)
	for i, v := range sine(2500, 8000, 8000, 0.1) {
		samples[i] += v
	}

	spec, err := analysis.Spectrum(samples, 8000)
	if err != nil {
		t.Fatal(err)
	}

	low := spec.BandPower(490, 510)
	high := spec.BandPower(2490, 2510)
	if ratio := low / high; ratio < 80 || ratio > 120 {
		t.Errorf("band power ratio = %.1f, want about 100", ratio)
	}
}

func TestSpectrum_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := analysis.Spectrum([]float32{1, 2}, 0); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Spectrum(rate=0) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := analysis.Spectrum([]float32{1}, 8000); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Spectrum(1 sample) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := analysis.PeakFrequency(nil, 8000); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("PeakFrequency(nil) error = %v, want ErrInvalidParameter", err)
	}
}

func TestPeakFrequency_MockSource(t *testing.T) {
	t.Parallel()

	buf, err := audio.ReadAll(audiotest.NewSineSource(22050, 1, 22050, 440))
	if err != nil {
		t.Fatal(err)
	}

	hz, err := analysis.PeakFrequency(buf.Channel(0), buf.SampleRate())
	if err != nil {
		t.Fatalf("PeakFrequency() error = %v", err)
	}
	if math.Abs(hz-440) > 1 {
		t.Errorf("PeakFrequency() = %.3f, want 440 ± 1", hz)
	}
}

func BenchmarkSpectrum(b *testing.B) {
	samples := sine(432, 44100, 44100, 1)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := analysis.Spectrum(samples, 44100); err != nil {
			b.Fatal(err)
		}
	}
}
