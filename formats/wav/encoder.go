// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/utils"
)

const (
	headerSize    = 44
	bitsPerSample = 16
	bytesPerInt16 = bitsPerSample / 8

	// samples per Write call
	chunkSize = 8192
)

// Header returns the canonical 44-byte header of a 16-bit PCM WAV holding
// frames frames of channels channels at sampleRate.
func Header(sampleRate, channels, frames int) ([]byte, error) {
	if sampleRate <= 0 || channels <= 0 || channels > math.MaxUint16 || frames < 0 {
		return nil, fmt.Errorf("%w: wav header %d Hz, %d channels, %d frames",
			audio.ErrInvalidParameter, sampleRate, channels, frames)
	}

	dataSize := uint64(frames) * uint64(channels) * bytesPerInt16
	if dataSize > math.MaxUint32-(headerSize-8) {
		return nil, ErrTooLarge
	}

	blockAlign := uint16(channels * bytesPerInt16)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(dataSize)+headerSize-8)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	return header, nil
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a canonical WAV.
// len(samples) must be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			audio.ErrInvalidParameter, len(samples), channels)
	}

	header, err := Header(sampleRate, channels, len(samples)/channels)
	if err != nil {
		return err
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*bytesPerInt16)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*bytesPerInt16]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}

// Encode writes buf as a 16-bit PCM WAV. Samples are clipped to [-1, 1] and
// quantized with utils.Float32ToInt16; frames are written interleaved.
//
// The only errors are from w, or ErrTooLarge for buffers over 4 GiB of PCM.
func Encode(w io.Writer, buf *audio.SampleBuffer) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", audio.ErrInvalidParameter)
	}

	channels := buf.Channels()
	header, err := Header(buf.SampleRate(), channels, buf.Len())
	if err != nil {
		return err
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	framesPerChunk := max(chunkSize/channels, 1)
	out := make([]byte, min(buf.Len(), framesPerChunk)*channels*bytesPerInt16)

	for start := 0; start < buf.Len(); start += framesPerChunk {
		end := min(start+framesPerChunk, buf.Len())
		off := 0

		for i := start; i < end; i++ {
			for c := range channels {
				binary.LittleEndian.PutUint16(out[off:], uint16(utils.Float32ToInt16(buf.At(c, i))))
				off += bytesPerInt16
			}
		}

		if _, err := w.Write(out[:off]); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}
