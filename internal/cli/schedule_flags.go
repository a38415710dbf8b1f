package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"github.com/spf13/cobra"
)

// scheduleFlags edit a schedule from the command line. Only flags the user
// set are applied.
type scheduleFlags struct {
	month    string
	week     int
	duration int
}

func (f *scheduleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.month, "start-month", "", "Start month: 1-12 or a month name (Ian, Martie, ...)")
	cmd.Flags().IntVar(&f.week, "start-week", 1, "Start week within the month, 1-4")
	cmd.Flags().IntVar(&f.duration, "duration", 4, "Duration in weeks, 1-48")
}

func (f *scheduleFlags) apply(cmd *cobra.Command, s *domain.Schedule) error {
	if cmd.Flags().Changed("start-month") {
		m, ok := domain.ParseMonth(f.month)
		if !ok {
			return fmt.Errorf("%w: unknown month %q", domain.ErrInvalid, f.month)
		}
		s.StartMonth = m
	}
	if cmd.Flags().Changed("start-week") {
		if f.week < 1 || f.week > domain.WeeksPerMonth {
			return fmt.Errorf("%w: start week %d out of range 1-4", domain.ErrInvalid, f.week)
		}
		s.StartWeekOffset = f.week - 1
	}
	if cmd.Flags().Changed("duration") {
		s.DurationWeeks = f.duration
	}
	return nil
}

// dragBy runs one drag gesture of the given number of weeks on an edge,
// exactly as the chart does for a pointer moved that many cells. It
// reports whether the result differs from s.
func dragBy(s domain.Schedule, edge timeline.Edge, weeks int) (domain.Schedule, bool) {
	d := timeline.Begin(edge, s, 0)
	d = d.Move(weeks*timeline.CellWidth, timeline.CellWidth)
	final, changed, _ := d.Release()
	return final, changed
}
