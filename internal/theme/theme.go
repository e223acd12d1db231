// Package theme holds the process-wide light/dark preference. It is read once
// at startup and written through on every change.
package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
)

// StorageKey is the fixed key the preference is persisted under.
const StorageKey = "theme"

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	}
	return "", false
}

// Store persists preferences by key.
type Store interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

type Preference struct {
	store Store

	mu   sync.RWMutex
	mode Mode
}

// Load reads the stored preference. Without a valid stored value the system
// preference decides.
func Load(ctx context.Context, store Store, systemPrefersDark bool) (*Preference, error) {
	p := &Preference{store: store, mode: Light}
	if systemPrefersDark {
		p.mode = Dark
	}

	raw, ok, err := store.GetPreference(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("theme: load preference: %w", err)
	}
	if ok {
		if m, valid := ParseMode(raw); valid {
			p.mode = m
		} else {
			logging.WarnLog("Theme: ignoring stored value %q", raw)
		}
	}

	logging.InfoLog("Theme: initial mode %s", p.mode)
	return p, nil
}

// Mode returns the current mode.
func (p *Preference) Mode() Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// Toggle flips the mode and persists it.
func (p *Preference) Toggle(ctx context.Context) (Mode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := Dark
	if p.mode == Dark {
		next = Light
	}
	if err := p.store.SetPreference(ctx, StorageKey, string(next)); err != nil {
		return p.mode, fmt.Errorf("theme: persist preference: %w", err)
	}
	p.mode = next
	return next, nil
}

// Set stores m.
func (p *Preference) Set(ctx context.Context, m Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.SetPreference(ctx, StorageKey, string(m)); err != nil {
		return fmt.Errorf("theme: persist preference: %w", err)
	}
	p.mode = m
	return nil
}
