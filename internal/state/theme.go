package state

import (
	"errors"
	"strings"
)

// Theme is the user's theme choice. System defers to the host preference.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// ResolvedTheme is the theme actually applied: light or dark.
type ResolvedTheme string

const (
	ResolvedLight ResolvedTheme = "light"
	ResolvedDark  ResolvedTheme = "dark"
)

// DefaultTheme applies when nothing valid is persisted.
const DefaultTheme = Dark

var ErrInvalidTheme = errors.New("invalid theme")

func (t Theme) Valid() bool {
	return t == Light || t == Dark || t == System
}

func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidTheme
	}
	return t, nil
}

// Resolve maps a theme to light or dark. prefersDark is consulted only for
// System; a nil signal reads as light.
func Resolve(t Theme, prefersDark func() bool) ResolvedTheme {
	switch t {
	case Light:
		return ResolvedLight
	case Dark:
		return ResolvedDark
	case System:
		if prefersDark != nil && prefersDark() {
			return ResolvedDark
		}
		return ResolvedLight
	default:
		return ResolvedDark
	}
}
