package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDarkenColor(t *testing.T) {
	assert.Equal(t, "#234e93", DarkenColor("#3B82F6", 0.4))
	assert.Equal(t, "#000000", DarkenColor("#FFFFFF", 1))
	assert.Equal(t, "#ffffff", DarkenColor("#FFFFFF", 0))
	assert.Equal(t, "nope", DarkenColor("nope", 0.4))
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#10B981", NormalizeColor("#10b981"))
	assert.Equal(t, "#10B981", NormalizeColor("10b981"))
	assert.Equal(t, DefaultColor, NormalizeColor(""))
	assert.Equal(t, DefaultColor, NormalizeColor("#12"))
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := ParseHexColor("#F59E0B")
	require.NoError(t, err)
	assert.Equal(t, []uint8{0xF5, 0x9E, 0x0B}, []uint8{r, g, b})

	_, _, _, err = ParseHexColor("F59E0B")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestPickPaletteColor(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		assert.Contains(t, Palette, PickPaletteColor(r))
	}
}

func TestParseMonth(t *testing.T) {
	cases := map[string]int{"1": 0, "12": 11, "mar": 2, "Martie": 2, "DEC": 11}
	for in, want := range cases {
		got, ok := ParseMonth(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"0", "13", "foo", ""} {
		_, ok := ParseMonth(in)
		assert.False(t, ok, in)
	}
	assert.Equal(t, "", MonthName(12))
	assert.Equal(t, "Ianuarie", MonthName(0))
}

func TestParseTheme(t *testing.T) {
	k, err := ParseTheme(" Professional ")
	require.NoError(t, err)
	assert.Equal(t, ThemeProfessional, k)

	_, err = ParseTheme("neon")
	require.ErrorIs(t, err, ErrInvalid)

	assert.Equal(t, ThemeProfessional, NextTheme(ThemeGruvbox))
	assert.Equal(t, ThemeGruvbox, NextTheme(ThemeProfessional))
	assert.Equal(t, DefaultTheme, NextTheme("x"))
}
