package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProgress(t *testing.T) {
	out := RenderProgress(50, 10)
	assert.Contains(t, out, strings.Repeat(filledBlock, 5)+strings.Repeat(emptyBlock, 5))
	assert.Contains(t, out, " 50%")

	assert.Contains(t, RenderProgress(-4, 4), "  0%")
	assert.Contains(t, RenderProgress(140, 4), strings.Repeat(filledBlock, 4))
}

func TestProgressStyle_Buckets(t *testing.T) {
	defer ApplyTheme(domain.DefaultTheme)
	ApplyTheme(domain.ThemeGruvbox)

	assert.Equal(t, ColorGray, ProgressStyle(domain.ProgressNone).GetForeground())
	assert.Equal(t, ColorYellow, ProgressStyle(domain.BucketFor(1)).GetForeground())
	assert.Equal(t, ColorBlue, ProgressStyle(domain.BucketFor(50)).GetForeground())
	assert.Equal(t, ColorGreen, ProgressStyle(domain.BucketFor(100)).GetForeground())
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme(domain.DefaultTheme)

	ApplyTheme(domain.ThemeProfessional)
	assert.Equal(t, domain.ThemeProfessional, CurrentTheme())
	assert.Equal(t, ProfessionalPalette.Header, ColorHeader)

	ApplyTheme(domain.ThemeGruvbox)
	assert.Equal(t, GruvboxPalette.Header, ColorHeader)
}

func TestGanttRow_Geometry(t *testing.T) {
	l := DefaultLayout
	row := GanttRow(l, BarRow{
		Label:    "Scoala 12",
		Schedule: domain.Schedule{StartMonth: 2, DurationWeeks: 8},
		Color:    "#EF4444",
		Progress: 50,
	})
	assert.Equal(t, l.Width(), lipgloss.Width(row))

	plain := []rune(stripANSI(row))
	grid := plain[l.LabelWidth:]
	assert.Equal(t, strings.Repeat(barBlock, 16), string(grid[16:32]), "weeks 8-15 at two columns each")
	assert.Equal(t, gridMonth, string(grid[0]))
	assert.Equal(t, gridMonth, string(grid[32]))
	assert.True(t, strings.HasPrefix(string(plain), "  Scoala 12"))
}

func TestGanttRow_StageAndProgressLabel(t *testing.T) {
	l := DefaultLayout
	stage := stripANSI(GanttRow(l, BarRow{Label: "Demolare", Schedule: domain.Schedule{DurationWeeks: 1}, Stage: true}))
	assert.True(t, strings.HasPrefix(stage, "   └ Demolare"))
	assert.Contains(t, stage, stageBlock+stageBlock)

	shown := stripANSI(GanttRow(l, BarRow{Label: "A", Schedule: domain.Schedule{DurationWeeks: 4}, Progress: 30, ShowProgress: true}))
	assert.True(t, strings.HasSuffix(shown, " 30%"))
}

func TestLayout_BarRect(t *testing.T) {
	r := DefaultLayout.BarRect(domain.Schedule{StartMonth: 1, StartWeekOffset: 3, DurationWeeks: 4})
	assert.Equal(t, DefaultLayout.LabelWidth+7*2, r.Left)
	assert.Equal(t, 8, r.Width)
}

func TestMonthHeader(t *testing.T) {
	h := stripANSI(MonthHeader(DefaultLayout))
	assert.Equal(t, DefaultLayout.Width(), lipgloss.Width(h))
	assert.Equal(t, "Ian", strings.TrimSpace(h[DefaultLayout.LabelWidth:DefaultLayout.LabelWidth+8]))
}

func TestRenderTable(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"wide cell", "x"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A          LONGER", lines[0])
	assert.Equal(t, "wide cell  x", lines[2])
}

func TestFormatProjectDetail(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	p := domain.Project{
		ID:        "0123456789",
		Name:      "Scoala 12",
		Schedule:  domain.Schedule{StartMonth: 2, DurationWeeks: 9},
		Color:     "#3B82F6",
		Progress:  40,
		DriveLink: "https://drive.example/folder",
		UpdatedAt: now.Add(-3 * time.Hour),
		Stages:    []domain.Stage{{ID: "s1", Name: "Demolare", Schedule: domain.Schedule{StartMonth: 2, DurationWeeks: 2}}},
	}
	comments := []*domain.Comment{{ID: "c1", AuthorName: "Ana", Content: "Gata fundatia", CreatedAt: now.Add(-2 * time.Hour)}}

	out := stripANSI(FormatProjectDetail(p, comments, now))
	assert.Contains(t, out, "Mar w1, 9 weeks")
	assert.Contains(t, out, "Martie to Mai")
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "Demolare")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "https://drive.example/folder")
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "Etapa…", Truncate("Etapa Nouă 1", 6))
	assert.Equal(t, "ab", Truncate("ab", 6))
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "abc…", PadRight("abcdef", 4))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
