// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	// ErrInvalidParameter marks a caller contract violation such as a
	// non-positive duration or sample rate.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownFormat is wrapped in a DecodeError when no decoder
	// recognizes the container.
	ErrUnknownFormat = errors.New("unrecognized audio container")
)

// DecodeError reports that an input byte stream could not be decoded.
// Format is the container key when it is known, empty otherwise.
type DecodeError struct {
	Format string
	Err    error
}

func NewDecodeError(format string, err error) *DecodeError {
	return &DecodeError{Format: format, Err: err}
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode audio: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
