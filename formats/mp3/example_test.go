// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/mp3"
)

// Example_invalidInput shows the error returned for data that is not MP3.
func Example_invalidInput() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 stream")))

	var decErr *audio.DecodeError
	if errors.As(err, &decErr) {
		fmt.Println("format:", decErr.Format)
	}
	// Output: format: mp3
}
