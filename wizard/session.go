// SPDX-License-Identifier: EPL-2.0

package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/internal/logging"
	"github.com/ik5/podmix/settings"
)

// Session is one pass through the wizard.
type Session struct {
	id     uuid.UUID
	logger *slog.Logger
	store  settings.Store

	state State
	input *audio.SampleBuffer
	cfg   MixConfig
}

// New starts a session in SelectingInput with DefaultMixConfig. store may
// be nil, in which case only built-in presets resolve.
func New(logger *slog.Logger, store settings.Store) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		logger: logging.NewComponentLogger(logger, "wizard").With(slog.String("session", id.String())),
		store:  store,
		state:  SelectingInput,
		cfg:    DefaultMixConfig(),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) State() State { return s.state }

// Config returns a copy of the current mix config.
func (s *Session) Config() MixConfig { return s.cfg }

// Input is the selected voice track, nil until SelectInput succeeds.
func (s *Session) Input() *audio.SampleBuffer { return s.input }

// setState records a move that the caller has already checked against
// the transition table.
func (s *Session) setState(to State) {
	s.logger.Debug("state change", slog.String("from", s.state.String()), slog.String("to", to.String()))
	s.state = to
}

// SelectInput sets the voice track and moves to Configuring.
func (s *Session) SelectInput(buf *audio.SampleBuffer) error {
	if s.state != SelectingInput {
		return invalidTransition("select input", s.state)
	}
	if buf == nil {
		return fmt.Errorf("%w: input buffer is nil", audio.ErrInvalidParameter)
	}

	s.input = buf
	s.logger.Info("input selected",
		slog.Int("sample_rate", buf.SampleRate()),
		slog.Int("channels", buf.Channels()),
		slog.Duration("duration", buf.Duration()),
	)
	s.setState(Configuring)
	return nil
}

// Configure applies opts in order to a copy of the config and keeps the
// result only if every option succeeded.
func (s *Session) Configure(ctx context.Context, opts ...Option) error {
	if s.state != Configuring {
		return invalidTransition("configure", s.state)
	}

	next := s.cfg
	u := &update{ctx: ctx, store: s.store, cfg: &next}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return fmt.Errorf("configure: %w", err)
		}
	}

	s.cfg = next
	return nil
}

// Back returns to SelectingInput and drops the selected input. The mix
// config is kept.
func (s *Session) Back() error {
	if !canTransition(s.state, SelectingInput) {
		return invalidTransition("back", s.state)
	}

	s.input = nil
	s.setState(SelectingInput)
	return nil
}

// Export validates the config, renders the mix and writes it to w as WAV.
// On success the session is Done; on any failure it returns to
// Configuring so the user can adjust and retry. Output already written to
// w is not retracted.
func (s *Session) Export(ctx context.Context, w io.Writer) error {
	if !canTransition(s.state, Exporting) {
		return invalidTransition("export", s.state)
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.setState(Exporting)
	started := time.Now()

	if err := s.export(ctx, w); err != nil {
		s.logger.Error("export failed", logging.Error(err))
		s.setState(Configuring)
		return err
	}

	s.logger.Info("export done",
		slog.String("tone", toneName(s.cfg)),
		slog.Duration("elapsed", time.Since(started)),
	)
	s.setState(Done)

	if s.store != nil && s.cfg.PresetName != "" {
		if err := s.store.SetSetting(ctx, settings.SettingLastPreset, s.cfg.PresetName); err != nil {
			s.logger.Warn("remember last preset", logging.Error(err))
		}
	}
	return nil
}

func (s *Session) export(ctx context.Context, w io.Writer) error {
	out, err := podmix.Render(s.request())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// rendering is not interruptible; a cancelled export is dropped here
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Debug("rendered",
		slog.Int("frames", out.Len()),
		slog.Int("channels", out.Channels()),
		slog.Int("sample_rate", out.SampleRate()),
	)

	if err := wav.Encode(w, out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func (s *Session) request() podmix.RenderRequest {
	return podmix.RenderRequest{
		Voice:       s.input,
		Tone:        s.cfg.Tone,
		ToneGain:    float32(s.cfg.ToneGain),
		Ambient:     s.cfg.Ambient,
		AmbientGain: float32(s.cfg.AmbientGain),
		SampleRate:  s.cfg.SampleRate,
		Mono:        s.cfg.Mono,
	}
}

func toneName(cfg MixConfig) string {
	switch {
	case cfg.PresetName != "":
		return cfg.PresetName
	case cfg.Tone != nil:
		return cfg.Tone.String()
	default:
		return "none"
	}
}
