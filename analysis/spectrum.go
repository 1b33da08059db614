// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/ik5/podmix/audio"
)

// MaxFFTSize bounds the transform length. Longer inputs are averaged over
// half-overlapping segments of this size.
const MaxFFTSize = 1 << 16

// Magnitudes is a one-sided amplitude spectrum. Bins[k] covers
// k*BinHz() for k in [0, FFTSize/2].
type Magnitudes struct {
	Bins       []float64
	FFTSize    int
	SampleRate int
}

// BinHz is the frequency spacing between bins.
func (m *Magnitudes) BinHz() float64 {
	return float64(m.SampleRate) / float64(m.FFTSize)
}

// Peak returns the frequency and magnitude of the strongest non-DC bin.
// The frequency is refined by fitting a parabola through the log
// magnitudes of the peak and its neighbours.
func (m *Magnitudes) Peak() (hz, magnitude float64) {
	k := 1
	for i := 2; i < len(m.Bins); i++ {
		if m.Bins[i] > m.Bins[k] {
			k = i
		}
	}
	if k >= len(m.Bins) {
		return 0, 0
	}

	offset := 0.0
	if k < len(m.Bins)-1 {
		a, b, c := m.Bins[k-1], m.Bins[k], m.Bins[k+1]
		if a > 0 && b > 0 && c > 0 {
			la, lb, lc := math.Log(a), math.Log(b), math.Log(c)
			if d := la - 2*lb + lc; d < 0 {
				offset = 0.5 * (la - lc) / d
			}
		}
	}

	return (float64(k) + offset) * m.BinHz(), m.Bins[k]
}

// BandPower sums squared magnitudes of bins whose centre lies in
// [loHz, hiHz].
func (m *Magnitudes) BandPower(loHz, hiHz float64) float64 {
	binHz := m.BinHz()
	var sum float64
	for k, v := range m.Bins {
		if f := float64(k) * binHz; f >= loHz && f <= hiHz {
			sum += v * v
		}
	}
	return sum
}

// MaxPowerOutside is the largest squared magnitude of any non-DC bin
// outside [loHz, hiHz].
func (m *Magnitudes) MaxPowerOutside(loHz, hiHz float64) float64 {
	binHz := m.BinHz()
	var best float64
	for k := 1; k < len(m.Bins); k++ {
		if f := float64(k) * binHz; f >= loHz && f <= hiHz {
			continue
		}
		best = max(best, m.Bins[k]*m.Bins[k])
	}
	return best
}

// Spectrum computes the Hann-windowed amplitude spectrum of samples.
//
// The FFT length is the next power of two at or above len(samples), capped
// at MaxFFTSize; short inputs are zero-padded. Inputs longer than the cap
// are split into half-overlapping segments whose power spectra are
// averaged.
func Spectrum(samples []float32, sampleRate int) (*Magnitudes, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: spectrum sample rate must be > 0, got %d", audio.ErrInvalidParameter, sampleRate)
	}
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: spectrum needs at least 2 samples, got %d", audio.ErrInvalidParameter, len(samples))
	}

	size := fftSize(len(samples))
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum fft plan: %w", err)
	}

	segLen := min(len(samples), size)
	hop := max(segLen/2, 1)
	win := hann(segLen)

	in := make([]complex128, size)
	out := make([]complex128, size)
	power := make([]float64, size/2+1)
	segments := 0

	for start := 0; start+segLen <= len(samples); start += hop {
		clear(in)
		for i, w := range win {
			in[i] = complex(float64(samples[start+i])*w, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("spectrum forward fft: %w", err)
		}

		for k := range power {
			re, im := real(out[k]), imag(out[k])
			power[k] += re*re + im*im
		}
		segments++
	}

	// amplitude of a full-scale sine reads as 1.0
	gain := 0.0
	for _, w := range win {
		gain += w
	}
	norm := 2 / gain

	for k := range power {
		power[k] = math.Sqrt(power[k]/float64(segments)) * norm
	}

	return &Magnitudes{Bins: power, FFTSize: size, SampleRate: sampleRate}, nil
}

// PeakFrequency returns the dominant frequency of samples in Hz.
func PeakFrequency(samples []float32, sampleRate int) (float64, error) {
	spec, err := Spectrum(samples, sampleRate)
	if err != nil {
		return 0, err
	}
	hz, _ := spec.Peak()
	return hz, nil
}

func fftSize(n int) int {
	if n >= MaxFFTSize {
		return MaxFFTSize
	}
	return 1 << bits.Len(uint(n-1))
}

// hann is the symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}
