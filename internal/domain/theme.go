package domain

import (
	"fmt"
	"strings"
)

type ThemeKey string

const (
	ThemeGruvbox      ThemeKey = "gruvbox"
	ThemeProfessional ThemeKey = "professional"
)

// DefaultTheme is used when no theme has been persisted yet.
const DefaultTheme = ThemeGruvbox

// Themes lists the selectable theme keys in display order.
var Themes = []ThemeKey{ThemeGruvbox, ThemeProfessional}

// ParseTheme validates a theme key (case-insensitive).
func ParseTheme(s string) (ThemeKey, error) {
	key := ThemeKey(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Themes {
		if t == key {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown theme %q", ErrInvalid, s)
}

// NextTheme cycles to the theme after t.
func NextTheme(t ThemeKey) ThemeKey {
	for i, k := range Themes {
		if k == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return DefaultTheme
}
