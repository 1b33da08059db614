// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ik5/podmix/audio"
)

// Spec describes a tone. It is implemented by Pure and Binaural only.
type Spec interface {
	// Frequencies returns the left and right channel frequencies in Hz.
	Frequencies() (left, right float64)
	String() string

	sealed()
}

// Pure plays FrequencyHz on both channels.
type Pure struct {
	FrequencyHz float64
}

func (p Pure) Frequencies() (float64, float64) { return p.FrequencyHz, p.FrequencyHz }
func (p Pure) String() string                  { return formatHz(p.FrequencyHz) + " Hz" }
func (Pure) sealed()                           {}

// Binaural plays BaseHz on the left channel and BaseHz+BeatOffsetHz on the
// right, perceived as a beat at BeatOffsetHz.
type Binaural struct {
	BaseHz       float64
	BeatOffsetHz float64
}

func (b Binaural) Frequencies() (float64, float64) { return b.BaseHz, b.BaseHz + b.BeatOffsetHz }

func (b Binaural) String() string {
	return fmt.Sprintf("%s Hz + %s Hz beat", formatHz(b.BaseHz), formatHz(b.BeatOffsetHz))
}

func (Binaural) sealed() {}

func formatHz(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Frames is the number of frames Generate produces for duration at
// sampleRate.
func Frames(duration time.Duration, sampleRate int) int {
	return int(math.Round(duration.Seconds() * float64(sampleRate)))
}

// Generate renders spec as a 2-channel buffer of duration at sampleRate.
//
// Channel c at frame i is sin(2π·f_c·i/sampleRate) for any finite f_c, so a
// zero frequency renders silence and a negative one an inverted sine. A
// non-positive duration or sample rate, a nil spec, or a NaN or infinite
// channel frequency returns an error wrapping audio.ErrInvalidParameter.
func Generate(spec Spec, duration time.Duration, sampleRate int) (*audio.SampleBuffer, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: tone spec is nil", audio.ErrInvalidParameter)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: tone duration must be > 0, got %v", audio.ErrInvalidParameter, duration)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: tone sample rate must be > 0, got %d", audio.ErrInvalidParameter, sampleRate)
	}

	left, right := spec.Frequencies()
	if !validHz(left) || !validHz(right) {
		return nil, fmt.Errorf("%w: tone frequencies must be finite, got %v/%v", audio.ErrInvalidParameter, left, right)
	}

	frames := Frames(duration, sampleRate)
	l := sine(left, sampleRate, frames)

	var r []float32
	if right == left {
		r = make([]float32, frames)
		copy(r, l)
	} else {
		r = sine(right, sampleRate, frames)
	}

	return audio.NewSampleBuffer(sampleRate, [][]float32{l, r})
}

func sine(freq float64, sampleRate, frames int) []float32 {
	out := make([]float32, frames)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = float32(math.Sin(step * float64(i)))
	}
	return out
}

func validHz(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
