package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

const textLabelWidth = 28

// WriteText renders the chart as a fixed-width Gantt: one character per week.
func WriteText(w io.Writer, c Chart, stages bool) error {
	var b strings.Builder
	b.WriteString(c.Title())
	b.WriteString("\n\n")

	b.WriteString(strings.Repeat(" ", textLabelWidth))
	for m := 0; m < domain.MonthsPerYear; m++ {
		fmt.Fprintf(&b, "%-4s", domain.MonthShortName(m))
	}
	b.WriteString("\n")

	if len(c.Projects) == 0 {
		b.WriteString("No projects available\n")
	}
	for _, p := range c.Projects {
		label := p.Name
		if p.ShowProgress {
			label = fmt.Sprintf("%s %d%%", p.Name, p.Progress)
		}
		writeTextRow(&b, label, p.Schedule, '█')
		if !stages {
			continue
		}
		for _, st := range p.Stages {
			writeTextRow(&b, "  "+st.Name, st.Schedule, '▒')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// TextBar renders one schedule as 48 cells.
func TextBar(s domain.Schedule, on rune) string {
	s = s.Clamp()
	cells := make([]rune, domain.TotalWeeks)
	for i := range cells {
		switch {
		case i >= s.StartWeek() && i < s.EndWeek():
			cells[i] = on
		case i%domain.WeeksPerMonth == 0:
			cells[i] = '|'
		default:
			cells[i] = '.'
		}
	}
	return string(cells)
}

func writeTextRow(b *strings.Builder, label string, s domain.Schedule, on rune) {
	label = clip(label, textLabelWidth-1)
	b.WriteString(label)
	b.WriteString(strings.Repeat(" ", textLabelWidth-len([]rune(label))))
	b.WriteString(TextBar(s, on))
	b.WriteString("\n")
}
