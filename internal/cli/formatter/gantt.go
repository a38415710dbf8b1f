package formatter

import (
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	barBlock   = "█"
	stageBlock = "▆"
	gridDot    = "·"
	gridMonth  = "┊"
)

// GanttLayout is the terminal geometry of the chart: a label column
// followed by 48 week cells of CellWidth columns each.
type GanttLayout struct {
	LabelWidth int
	CellWidth  int
}

// DefaultLayout fits a 120-column terminal.
var DefaultLayout = GanttLayout{LabelWidth: 22, CellWidth: 2}

// GridLeft is the screen column of week 0.
func (l GanttLayout) GridLeft() int {
	return l.LabelWidth
}

// Width is the full row width.
func (l GanttLayout) Width() int {
	return l.LabelWidth + timeline.GridWidth(l.CellWidth)
}

// BarRect returns the screen columns a schedule occupies.
func (l GanttLayout) BarRect(s domain.Schedule) timeline.Rect {
	r := timeline.Geometry(s, l.CellWidth)
	r.Left += l.GridLeft()
	return r
}

// MonthHeader renders the short month names, one per four week cells.
func MonthHeader(l GanttLayout) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.LabelWidth))
	span := domain.WeeksPerMonth * l.CellWidth
	for m := 0; m < domain.MonthsPerYear; m++ {
		b.WriteString(PadRight(domain.MonthShortName(m), span))
	}
	return StyleHeader.Render(b.String())
}

// BarRow describes one chart row.
type BarRow struct {
	Label        string
	Schedule     domain.Schedule
	Color        string
	Progress     int
	ShowProgress bool
	Stage        bool
	Selected     bool
	Expanded     bool
	HasStages    bool
}

// GanttRow renders a row: the label column, then the bar on the week grid.
// Projects show their progress as a darkened leading segment.
func GanttRow(l GanttLayout, r BarRow) string {
	var b strings.Builder
	b.WriteString(rowLabel(l, r))

	bar := timeline.Geometry(r.Schedule, l.CellWidth)
	done := bar
	done.Width = bar.Width * r.Progress / 100
	if r.Stage {
		done.Width = 0
	}

	color := domain.NormalizeColor(r.Color)
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	dark := lipgloss.NewStyle().Foreground(lipgloss.Color(domain.DarkenColor(color, 0.4)))
	block := barBlock
	if r.Stage {
		block = stageBlock
	}

	grid := timeline.GridWidth(l.CellWidth)
	for x := 0; x < grid; {
		// Group runs of identical cells so each gets one style call.
		kind := cellKind(bar, done, x)
		end := x + 1
		for end < grid && cellKind(bar, done, end) == kind && !(kind == cellEmpty && end%l.CellWidth == 0) {
			end++
		}
		n := end - x
		switch kind {
		case cellDone:
			b.WriteString(dark.Render(strings.Repeat(block, n)))
		case cellBar:
			b.WriteString(fill.Render(strings.Repeat(block, n)))
		default:
			b.WriteString(gridCell(l, x, n))
		}
		x = end
	}

	if r.ShowProgress && !r.Stage {
		b.WriteString(" " + ProgressLabel(r.Progress))
	}
	return b.String()
}

const (
	cellEmpty = iota
	cellBar
	cellDone
)

func cellKind(bar, done timeline.Rect, x int) int {
	switch {
	case done.Width > 0 && done.Contains(x):
		return cellDone
	case bar.Contains(x):
		return cellBar
	default:
		return cellEmpty
	}
}

// gridCell renders n empty columns starting at x, which is cell aligned.
func gridCell(l GanttLayout, x, n int) string {
	week := x / l.CellWidth
	mark := gridDot
	if week%domain.WeeksPerMonth == 0 {
		mark = gridMonth
	}
	return StyleDim.Render(mark + strings.Repeat(" ", n-1))
}

func rowLabel(l GanttLayout, r BarRow) string {
	prefix := "  "
	switch {
	case r.Stage:
		prefix = "   └ "
	case r.HasStages && r.Expanded:
		prefix = "▾ "
	case r.HasStages:
		prefix = "▸ "
	}
	text := PadRight(prefix+r.Label, l.LabelWidth-1) + " "
	switch {
	case r.Selected:
		return lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Reverse(true).Render(text[:len(text)-1]) + " "
	case r.Stage:
		return StyleDim.Render(text)
	default:
		return StyleFg.Render(text)
	}
}
