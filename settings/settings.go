// SPDX-License-Identifier: EPL-2.0

package settings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/podmix/tone"
)

var (
	// ErrNotFound is returned for a missing preset or setting.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPreset wraps every Preset.Validate failure.
	ErrInvalidPreset = errors.New("invalid preset")
)

// Setting keys written by podmix.
const (
	// SettingLastPreset holds the name of the preset used by the last
	// successful export.
	SettingLastPreset = "last_preset"
)

const (
	maxNameLen = 64
	maxGain    = 4.0
)

// Kind selects which tone fields of a Preset are meaningful.
type Kind string

const (
	KindPure     Kind = "pure"
	KindBinaural Kind = "binaural"
)

// Preset is a saved tone with its mix gain.
type Preset struct {
	ID   uuid.UUID
	Name string
	Kind Kind

	// FrequencyHz is used by KindPure.
	FrequencyHz float64
	// BaseHz and BeatOffsetHz are used by KindBinaural.
	BaseHz       float64
	BeatOffsetHz float64

	Gain float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence boundary for presets and settings.
type Store interface {
	// SavePreset validates p and inserts or replaces the preset with the
	// same name, returning the stored copy.
	SavePreset(ctx context.Context, p Preset) (Preset, error)
	Preset(ctx context.Context, name string) (Preset, error)
	// ListPresets returns all presets ordered by name.
	ListPresets(ctx context.Context) ([]Preset, error)
	DeletePreset(ctx context.Context, name string) error

	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	Close() error
}

// NormalizeName is the canonical form under which a preset name is stored.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Spec converts the preset into the tone it describes.
func (p Preset) Spec() (tone.Spec, error) {
	switch p.Kind {
	case KindPure:
		return tone.Pure{FrequencyHz: p.FrequencyHz}, nil
	case KindBinaural:
		return tone.Binaural{BaseHz: p.BaseHz, BeatOffsetHz: p.BeatOffsetHz}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidPreset, p.Kind)
	}
}

// Validate checks the name, kind, frequencies and gain.
func (p Preset) Validate() error {
	name := NormalizeName(p.Name)
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidPreset)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidPreset, maxNameLen)
	}

	spec, err := p.Spec()
	if err != nil {
		return err
	}
	left, right := spec.Frequencies()
	if !positiveHz(left) || !positiveHz(right) {
		return fmt.Errorf("%w: %s has a non-positive channel frequency", ErrInvalidPreset, spec)
	}

	if math.IsNaN(p.Gain) || p.Gain < 0 || p.Gain > maxGain {
		return fmt.Errorf("%w: gain must be between 0 and %g, got %g", ErrInvalidPreset, maxGain, p.Gain)
	}
	return nil
}

// FromSpec builds a preset named name for spec.
func FromSpec(name string, spec tone.Spec, gain float64) (Preset, error) {
	p := Preset{Name: name, Gain: gain}
	switch s := spec.(type) {
	case tone.Pure:
		p.Kind = KindPure
		p.FrequencyHz = s.FrequencyHz
	case tone.Binaural:
		p.Kind = KindBinaural
		p.BaseHz = s.BaseHz
		p.BeatOffsetHz = s.BeatOffsetHz
	default:
		return Preset{}, fmt.Errorf("%w: unsupported tone %T", ErrInvalidPreset, spec)
	}
	return p, p.Validate()
}

func positiveHz(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

func notFound(what, name string) error {
	return fmt.Errorf("%s %q: %w", what, name, ErrNotFound)
}
