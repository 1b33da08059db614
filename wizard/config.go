// SPDX-License-Identifier: EPL-2.0

package wizard

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/settings"
	"github.com/ik5/podmix/tone"
)

// ErrInvalidConfig wraps every MixConfig.Validate failure.
var ErrInvalidConfig = errors.New("invalid mix config")

const (
	maxGain       = 4.0
	maxSampleRate = 384000
)

// MixConfig is everything the user can set between picking the input and
// exporting.
type MixConfig struct {
	// Tone is nil for no tone.
	Tone tone.Spec
	// PresetName is set when Tone came from WithPreset.
	PresetName string
	ToneGain   float64

	// Ambient is nil for no ambient track.
	Ambient     *audio.SampleBuffer
	AmbientGain float64

	// SampleRate of the export; zero keeps the input's rate.
	SampleRate int
	Mono       bool
}

// DefaultMixConfig has no tone or ambient and keeps the input's layout.
func DefaultMixConfig() MixConfig {
	return MixConfig{ToneGain: 0.1, AmbientGain: 0.3}
}

// Validate checks the config as a whole.
func (c MixConfig) Validate() error {
	if c.Tone != nil {
		left, right := c.Tone.Frequencies()
		if !(left > 0) || !(right > 0) || math.IsInf(left, 0) || math.IsInf(right, 0) {
			return fmt.Errorf("%w: tone %s has a non-positive channel frequency", ErrInvalidConfig, c.Tone)
		}
	}
	if err := checkGain("tone gain", c.ToneGain); err != nil {
		return err
	}
	if err := checkGain("ambient gain", c.AmbientGain); err != nil {
		return err
	}
	if c.SampleRate < 0 || c.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate must be between 0 and %d, got %d", ErrInvalidConfig, maxSampleRate, c.SampleRate)
	}
	return nil
}

func checkGain(what string, g float64) error {
	if math.IsNaN(g) || g < 0 || g > maxGain {
		return fmt.Errorf("%w: %s must be between 0 and %g, got %g", ErrInvalidConfig, what, maxGain, g)
	}
	return nil
}

// Option is one field update applied by Session.Configure.
type Option func(u *update) error

type update struct {
	ctx   context.Context
	store settings.Store
	cfg   *MixConfig
}

// WithTone sets the tone; nil removes it.
func WithTone(spec tone.Spec) Option {
	return func(u *update) error {
		u.cfg.Tone = spec
		u.cfg.PresetName = ""
		return nil
	}
}

// ResolvedPreset is a preset found by ResolvePreset.
type ResolvedPreset struct {
	Name string
	Spec tone.Spec
	// Gain is set for user presets only.
	Gain     float64
	FromUser bool
}

// ResolvePreset looks name up in store, then among the built-in presets,
// so a user preset shadows a built-in of the same name. store may be nil.
// An unknown name returns an error wrapping tone.ErrUnknownPreset.
func ResolvePreset(ctx context.Context, store settings.Store, name string) (ResolvedPreset, error) {
	if store != nil {
		p, err := store.Preset(ctx, name)
		switch {
		case err == nil:
			spec, err := p.Spec()
			if err != nil {
				return ResolvedPreset{}, err
			}
			return ResolvedPreset{Name: p.Name, Spec: spec, Gain: p.Gain, FromUser: true}, nil
		case !errors.Is(err, settings.ErrNotFound):
			return ResolvedPreset{}, fmt.Errorf("look up preset: %w", err)
		}
	}

	p, err := tone.LookupPreset(name)
	if err != nil {
		return ResolvedPreset{}, err
	}
	return ResolvedPreset{Name: p.Name, Spec: p.Spec}, nil
}

// WithPreset sets the tone from ResolvePreset. A user preset also sets the
// tone gain.
func WithPreset(name string) Option {
	return func(u *update) error {
		p, err := ResolvePreset(u.ctx, u.store, name)
		if err != nil {
			return err
		}
		u.cfg.Tone = p.Spec
		u.cfg.PresetName = p.Name
		if p.FromUser {
			u.cfg.ToneGain = p.Gain
		}
		return nil
	}
}

func WithToneGain(gain float64) Option {
	return func(u *update) error {
		u.cfg.ToneGain = gain
		return nil
	}
}

// WithAmbient sets the looped ambient track and its gain; a nil buffer
// removes it.
func WithAmbient(buf *audio.SampleBuffer, gain float64) Option {
	return func(u *update) error {
		u.cfg.Ambient = buf
		u.cfg.AmbientGain = gain
		return nil
	}
}

func WithSampleRate(rate int) Option {
	return func(u *update) error {
		u.cfg.SampleRate = rate
		return nil
	}
}

func WithMono(mono bool) Option {
	return func(u *update) error {
		u.cfg.Mono = mono
		return nil
	}
}
