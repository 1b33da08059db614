// SPDX-License-Identifier: EPL-2.0

package podmix

import (
	"fmt"
	"io"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/tone"
)

// RenderRequest describes one enrichment. Only Voice is required.
type RenderRequest struct {
	// Voice is the primary track; it sets the output length and channel
	// count and is mixed at unity gain.
	Voice *audio.SampleBuffer

	// Tone is generated for the voice's duration. Nil means no tone.
	Tone     tone.Spec
	ToneGain float32

	// Ambient is looped under the voice. Nil means no ambient track.
	Ambient     *audio.SampleBuffer
	AmbientGain float32

	// SampleRate of the output; zero keeps the voice's rate.
	SampleRate int
	// Mono downmixes the output to one channel.
	Mono bool
}

func (r RenderRequest) outputRate() int {
	if r.SampleRate > 0 {
		return r.SampleRate
	}
	return r.Voice.SampleRate()
}

// Render mixes the request into a new buffer.
func Render(req RenderRequest) (*audio.SampleBuffer, error) {
	if req.Voice == nil {
		return nil, fmt.Errorf("%w: render needs a voice track", audio.ErrInvalidParameter)
	}
	if req.SampleRate < 0 {
		return nil, fmt.Errorf("%w: sample rate must be >= 0, got %d", audio.ErrInvalidParameter, req.SampleRate)
	}

	rate := req.outputRate()
	spec := audio.MixSpec{
		Tracks:     []audio.Track{{Buffer: req.Voice, Gain: 1}},
		SampleRate: rate,
	}

	// an empty voice has no duration to fill
	if req.Tone != nil && req.Voice.Len() > 0 {
		toneBuf, err := tone.Generate(req.Tone, req.Voice.Duration(), rate)
		if err != nil {
			return nil, fmt.Errorf("generate tone: %w", err)
		}
		spec.Tracks = append(spec.Tracks, audio.Track{Buffer: toneBuf, Gain: req.ToneGain})
	}

	if req.Ambient != nil {
		spec.Tracks = append(spec.Tracks, audio.Track{Buffer: req.Ambient, Gain: req.AmbientGain})
	}

	out, err := audio.Mix(spec)
	if err != nil {
		return nil, fmt.Errorf("mix: %w", err)
	}

	if req.Mono {
		return Conform(out.Reader(), rate, true)
	}
	return out, nil
}

// Enrich renders req and writes it to w as 16-bit PCM WAV.
func Enrich(w io.Writer, req RenderRequest) error {
	out, err := Render(req)
	if err != nil {
		return err
	}
	return wav.Encode(w, out)
}
