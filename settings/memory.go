// SPDX-License-Identifier: EPL-2.0

package settings

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps presets and settings in process memory.
type MemoryStore struct {
	presets  map[string]Preset
	settings map[string]string

	mtx *sync.Mutex
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		presets:  make(map[string]Preset),
		settings: make(map[string]string),
		mtx:      &sync.Mutex{},
	}
}

func (m *MemoryStore) SavePreset(ctx context.Context, p Preset) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	p.Name = NormalizeName(p.Name)
	now := time.Now().UTC()

	if old, ok := m.presets[p.Name]; ok {
		p.ID = old.ID
		p.CreatedAt = old.CreatedAt
	} else {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	m.presets[p.Name] = p
	return p, nil
}

func (m *MemoryStore) Preset(ctx context.Context, name string) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	p, ok := m.presets[NormalizeName(name)]
	if !ok {
		return Preset{}, notFound("preset", name)
	}
	return p, nil
}

func (m *MemoryStore) ListPresets(ctx context.Context) ([]Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	out := make([]Preset, 0, len(m.presets))
	for _, p := range m.presets {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Preset) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *MemoryStore) DeletePreset(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := NormalizeName(name)
	if _, ok := m.presets[key]; !ok {
		return notFound("preset", name)
	}
	delete(m.presets, key)
	return nil
}

func (m *MemoryStore) Setting(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	v, ok := m.settings[key]
	if !ok {
		return "", notFound("setting", key)
	}
	return v, nil
}

func (m *MemoryStore) SetSetting(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.settings[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }
