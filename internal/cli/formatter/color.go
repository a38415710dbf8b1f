package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette is one colour theme of the terminal UI.
type Palette struct {
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	Blue   lipgloss.Color
	Purple lipgloss.Color
	Dim    lipgloss.Color
	Fg     lipgloss.Color
	Header lipgloss.Color
	Gray   lipgloss.Color
}

var (
	// GruvboxPalette is the default theme.
	GruvboxPalette = Palette{
		Green:  "#8ec07c",
		Yellow: "#fabd2f",
		Red:    "#fb4934",
		Blue:   "#83a598",
		Purple: "#d3869b",
		Dim:    "#928374",
		Fg:     "#ebdbb2",
		Header: "#fe8019",
		Gray:   "#a89984",
	}
	// ProfessionalPalette uses slate tones with blue accents.
	ProfessionalPalette = Palette{
		Green:  "#10B981",
		Yellow: "#F59E0B",
		Red:    "#EF4444",
		Blue:   "#3B82F6",
		Purple: "#6366F1",
		Dim:    "#64748B",
		Fg:     "#E2E8F0",
		Header: "#38BDF8",
		Gray:   "#94A3B8",
	}
)

// Colors of the active theme.
var (
	ColorGreen  lipgloss.Color
	ColorYellow lipgloss.Color
	ColorRed    lipgloss.Color
	ColorBlue   lipgloss.Color
	ColorPurple lipgloss.Color
	ColorDim    lipgloss.Color
	ColorFg     lipgloss.Color
	ColorHeader lipgloss.Color
	ColorGray   lipgloss.Color
)

// Styles of the active theme.
var (
	StyleGreen  lipgloss.Style
	StyleYellow lipgloss.Style
	StyleRed    lipgloss.Style
	StyleBlue   lipgloss.Style
	StylePurple lipgloss.Style
	StyleDim    lipgloss.Style
	StyleFg     lipgloss.Style
	StyleGray   lipgloss.Style
	StyleHeader lipgloss.Style
	StyleBold   lipgloss.Style
)

var currentTheme = domain.DefaultTheme

func init() {
	ApplyTheme(domain.DefaultTheme)
}

// PaletteFor returns the palette of a theme key.
func PaletteFor(key domain.ThemeKey) Palette {
	if key == domain.ThemeProfessional {
		return ProfessionalPalette
	}
	return GruvboxPalette
}

// ApplyTheme switches every exported colour and style to the theme's palette.
func ApplyTheme(key domain.ThemeKey) {
	p := PaletteFor(key)
	currentTheme = key

	ColorGreen, ColorYellow, ColorRed = p.Green, p.Yellow, p.Red
	ColorBlue, ColorPurple, ColorDim = p.Blue, p.Purple, p.Dim
	ColorFg, ColorHeader, ColorGray = p.Fg, p.Header, p.Gray

	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg = lipgloss.NewStyle().Foreground(ColorFg)
	StyleGray = lipgloss.NewStyle().Foreground(ColorGray)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
}

// CurrentTheme returns the key last passed to ApplyTheme.
func CurrentTheme() domain.ThemeKey {
	return currentTheme
}

// ProgressStyle colours a progress bucket: gray, yellow, blue, green.
func ProgressStyle(b domain.ProgressBucket) lipgloss.Style {
	switch b {
	case domain.ProgressStarted:
		return StyleYellow
	case domain.ProgressAdvanced:
		return StyleBlue
	case domain.ProgressDone:
		return StyleGreen
	default:
		return StyleGray
	}
}

// Swatch renders a small block in a bar colour.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(domain.NormalizeColor(hex))).Render("■■")
}

// Header renders a section header with the header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted colour.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground colour.
func Bold(text string) string {
	return StyleBold.Render(text)
}
