// SPDX-License-Identifier: EPL-2.0

package podmix_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/internal/audiotest"
	"github.com/ik5/podmix/tone"
)

// Example_enrich layers a binaural tone under a recording and exports the
// mix as WAV.
func Example_enrich() {
	// one second of stereo silence stands in for a decoded recording
	voice, _ := audio.NewSilentBuffer(44100, 2, 44100)

	out := new(bytes.Buffer)
	err := podmix.Enrich(out, podmix.RenderRequest{
		Voice:    voice,
		Tone:     tone.Binaural{BaseHz: 200, BeatOffsetHz: 40},
		ToneGain: 0.1,
	})
	if err != nil {
		fmt.Printf("enrich error: %v\n", err)
		return
	}

	fmt.Printf("Wrote %d bytes\n", out.Len())
	// Output: Wrote 176444 bytes
}

// Example_decode decodes an in-memory WAV without naming the format.
func Example_decode() {
	samples := []int16{100, -100, 200, -200, 300, -300}
	wavData := new(bytes.Buffer)
	_ = wav.WriteWAV16(wavData, 8000, 2, samples)

	buf, err := podmix.Decode(wavData)
	if err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %d frames\n", buf.SampleRate(), buf.Channels(), buf.Len())
	// Output: 8000 Hz, 2 channels, 3 frames
}

// Example_conform converts a stream to 8 kHz mono.
func Example_conform() {
	src := audiotest.NewSineSource(44100, 2, 44100, 440)

	buf, err := podmix.Conform(src, 8000, true)
	if err != nil {
		fmt.Printf("conform error: %v\n", err)
		return
	}

	fmt.Printf("%d Hz, %d channel\n", buf.SampleRate(), buf.Channels())
	// Output: 8000 Hz, 1 channel
}

// Example_errorHandling shows the error returned for unsupported input.
func Example_errorHandling() {
	_, err := podmix.Decode(bytes.NewReader([]byte("not an audio file")))

	var decErr *audio.DecodeError
	if errors.As(err, &decErr) {
		fmt.Println(decErr)
		fmt.Println(errors.Is(err, audio.ErrUnknownFormat))
	}
	// Output:
	// decode audio: unrecognized audio container
	// true
}
