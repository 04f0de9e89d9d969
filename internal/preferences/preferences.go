// Package preferences stores per-client display settings.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"curator/internal/storage"
)

// ThemeKey is the storage key for the theme preference.
const ThemeKey = "theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultTheme applies when nothing valid is stored.
const DefaultTheme = Light

var ErrInvalidTheme = errors.New("theme must be light or dark")

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

type Persistence interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Subscribe(key string, fn func(storage.Change)) (unsubscribe func())
}

type Service struct {
	storage Persistence
}

func NewService(p Persistence) *Service {
	return &Service{storage: p}
}

// Theme returns the stored theme, or DefaultTheme when none or an unknown
// value is stored.
func (s *Service) Theme(ctx context.Context, namespace string) (Theme, error) {
	raw, err := s.storage.Get(ctx, namespace, ThemeKey)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	t, err := ParseTheme(raw)
	if err != nil {
		return DefaultTheme, nil
	}
	return t, nil
}

func (s *Service) SetTheme(ctx context.Context, namespace string, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, namespace, ThemeKey, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context, namespace string) (Theme, error) {
	current, err := s.Theme(ctx, namespace)
	if err != nil {
		return "", err
	}
	next := Dark
	if current == Dark {
		next = Light
	}
	if err := s.SetTheme(ctx, namespace, next); err != nil {
		return "", err
	}
	return next, nil
}

// SubscribeTheme calls fn after every theme change in any namespace.
func (s *Service) SubscribeTheme(fn func(namespace string, t Theme)) (unsubscribe func()) {
	return s.storage.Subscribe(ThemeKey, func(c storage.Change) {
		t, err := ParseTheme(c.Value)
		if c.Deleted || err != nil {
			t = DefaultTheme
		}
		fn(c.Namespace, t)
	})
}
