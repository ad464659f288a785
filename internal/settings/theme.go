// Package settings persists user interface preferences.
package settings

import (
	"context"
	"fmt"
	"strconv"

	"fintrack/internal/storage"
)

// Theme stores the dark mode flag.
type Theme struct {
	kv storage.KeyValue
}

func NewTheme(kv storage.KeyValue) *Theme {
	return &Theme{kv: kv}
}

// Dark reports whether dark mode is on. Only the exact value "true" enables
// it; anything else, including a missing key, means light.
func (t *Theme) Dark(ctx context.Context) (bool, error) {
	v, ok, err := t.kv.Get(ctx, storage.KeyDarkMode)
	if err != nil {
		return false, fmt.Errorf("load theme: %w", err)
	}
	return ok && v == "true", nil
}

func (t *Theme) SetDark(ctx context.Context, dark bool) error {
	if err := t.kv.Set(ctx, storage.KeyDarkMode, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips the flag and returns the new value.
func (t *Theme) Toggle(ctx context.Context) (bool, error) {
	dark, err := t.Dark(ctx)
	if err != nil {
		return false, err
	}
	if err := t.SetDark(ctx, !dark); err != nil {
		return false, err
	}
	return !dark, nil
}
