// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input has no RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrOnlyPCMSupported indicates a compressed or floating point WAV.
	ErrOnlyPCMSupported = errors.New("only PCM WAV is supported")

	// ErrUnsupportedBitDepth indicates a PCM bit depth other than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrInvalidLayout indicates a header with zero channels or sample rate.
	ErrInvalidLayout = errors.New("invalid WAV layout")

	// ErrTooLarge indicates the PCM data does not fit a 32-bit RIFF size.
	ErrTooLarge = errors.New("WAV data exceeds 4 GiB")
)
