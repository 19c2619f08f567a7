package client

import (
	"context"
	"fmt"
	"sync"

	"ctchen222/rehla/internal/client/store"
)

// ThemeMode is the colour scheme preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode accepts "light" or "dark".
func ParseThemeMode(s string) (ThemeMode, error) {
	switch ThemeMode(s) {
	case ThemeLight, ThemeDark:
		return ThemeMode(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Theme is the persisted theme preference, light unless set otherwise.
type Theme struct {
	mu    sync.Mutex
	store store.Store
	mode  ThemeMode
}

func LoadTheme(ctx context.Context, st store.Store) (*Theme, error) {
	t := &Theme{store: st, mode: ThemeLight}

	raw, err := st.Get(ctx, store.KeyTheme)
	if err != nil {
		return nil, err
	}
	if mode, err := ParseThemeMode(string(raw)); err == nil {
		t.mode = mode
	}
	return t, nil
}

func (t *Theme) Current() ThemeMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Toggle flips between light and dark and returns the new mode.
func (t *Theme) Toggle(ctx context.Context) (ThemeMode, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := ThemeDark
	if t.mode == ThemeDark {
		next = ThemeLight
	}
	if err := t.store.Set(ctx, store.KeyTheme, []byte(next)); err != nil {
		return t.mode, err
	}
	t.mode = next
	return next, nil
}

func (t *Theme) Set(ctx context.Context, mode ThemeMode) error {
	if _, err := ParseThemeMode(string(mode)); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.Set(ctx, store.KeyTheme, []byte(mode)); err != nil {
		return err
	}
	t.mode = mode
	return nil
}
