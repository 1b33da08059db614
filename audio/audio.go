// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Source is a stream of interleaved float32 PCM.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples, normally in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// BufSize is the preferred read size in samples.
	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Detect peeks at the head of rd, identifies the container and returns the
// matching decoder along with a reader that still yields the full stream.
//
// Unknown or unregistered containers produce a *DecodeError.
func (r *Registry) Detect(rd io.Reader) (string, Decoder, io.Reader, error) {
	br := bufio.NewReaderSize(rd, sniffLen*4)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", nil, nil, NewDecodeError("", fmt.Errorf("read header: %w", err))
	}

	format, ok := Sniff(head)
	if !ok {
		return "", nil, nil, NewDecodeError("", ErrUnknownFormat)
	}

	dec, ok := r.Get(format)
	if !ok {
		return format, nil, nil, NewDecodeError(format, ErrUnknownFormat)
	}

	return format, dec, br, nil
}
