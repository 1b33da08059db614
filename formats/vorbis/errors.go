// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrInvalidStream indicates an identification header with no channels or
// a zero sample rate.
var ErrInvalidStream = errors.New("invalid vorbis stream")
