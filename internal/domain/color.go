package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

// DefaultColor is the bar colour of projects created without one.
const DefaultColor = "#3B82F6"

// Palette is the set of bar colours handed out to new and reset projects.
var Palette = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#EC4899", "#06B6D4", "#F97316",
	"#6366F1", "#14B8A6", "#D946EF", "#0EA5E9",
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColor accepts "#RRGGBB".
func ValidateColor(hex string) error {
	if !hexColorPattern.MatchString(hex) {
		return fmt.Errorf("%w: colour %q must look like #RRGGBB", ErrInvalid, hex)
	}
	return nil
}

// NormalizeColor upper-cases a valid colour and falls back to DefaultColor.
func NormalizeColor(hex string) string {
	hex = strings.TrimSpace(hex)
	if hex != "" && !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if ValidateColor(hex) != nil {
		return DefaultColor
	}
	return strings.ToUpper(hex)
}

// PickPaletteColor returns a random palette colour.
func PickPaletteColor(r *rand.Rand) string {
	if r == nil {
		return Palette[rand.IntN(len(Palette))]
	}
	return Palette[r.IntN(len(Palette))]
}

// ParseHexColor splits "#RRGGBB" into its channels.
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	if err := ValidateColor(hex); err != nil {
		return 0, 0, 0, err
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// DarkenColor scales every channel by (1 - percent), flooring each result.
// Invalid input is returned unchanged.
func DarkenColor(hex string, percent float64) string {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return hex
	}
	scale := func(c uint8) uint8 {
		v := int(float64(c) * (1 - percent))
		return uint8(clampInt(v, 0, 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))
}
