package domain

import "fmt"

// Grid constants. A year is a fixed grid of 12 months x 4 weeks.
const (
	WeeksPerMonth = 4
	MonthsPerYear = 12
	TotalWeeks    = MonthsPerYear * WeeksPerMonth
	LastStartWeek = TotalWeeks - 1
)

// Schedule is a week-granularity interval on the yearly grid.
type Schedule struct {
	StartMonth      int `json:"start_month" yaml:"start_month"`
	StartWeekOffset int `json:"start_week_offset" yaml:"start_week_offset"`
	DurationWeeks   int `json:"duration_weeks" yaml:"duration_weeks"`
}

// ScheduleAt builds a schedule from a total start-week position.
// The position is decomposed into month and week offset with floor/mod.
func ScheduleAt(startWeek, durationWeeks int) Schedule {
	return Schedule{
		StartMonth:      startWeek / WeeksPerMonth,
		StartWeekOffset: startWeek % WeeksPerMonth,
		DurationWeeks:   durationWeeks,
	}
}

// StartWeek returns the total start-week position (0-47).
func (s Schedule) StartWeek() int {
	return s.StartMonth*WeeksPerMonth + s.StartWeekOffset
}

// EndWeek returns the exclusive end-week position.
func (s Schedule) EndWeek() int {
	return s.StartWeek() + s.DurationWeeks
}

// LastMonth returns the last month the schedule is counted in by the month-range
// filter: startMonth + ceil(durationWeeks/4) - 1.
func (s Schedule) LastMonth() int {
	return s.StartMonth + ceilDiv(s.DurationWeeks, WeeksPerMonth) - 1
}

// MaxDurationWeeks is the longest duration that still ends inside the year.
func (s Schedule) MaxDurationWeeks() int {
	return TotalWeeks - s.StartWeek()
}

// Validate checks the ranges of every field and that the schedule ends by week 48.
func (s Schedule) Validate() error {
	if s.StartMonth < 0 || s.StartMonth >= MonthsPerYear {
		return fmt.Errorf("%w: start month %d out of range 0-11", ErrInvalid, s.StartMonth)
	}
	if s.StartWeekOffset < 0 || s.StartWeekOffset >= WeeksPerMonth {
		return fmt.Errorf("%w: start week offset %d out of range 0-3", ErrInvalid, s.StartWeekOffset)
	}
	if s.DurationWeeks < 1 || s.DurationWeeks > TotalWeeks {
		return fmt.Errorf("%w: duration %d weeks out of range 1-48", ErrInvalid, s.DurationWeeks)
	}
	if s.EndWeek() > TotalWeeks {
		return fmt.Errorf("%w: schedule ends at week %d, past the end of the year", ErrInvalid, s.EndWeek())
	}
	return nil
}

// Clamp pulls every field into range and shortens the duration so the
// schedule ends by week 48.
func (s Schedule) Clamp() Schedule {
	s.StartMonth = clampInt(s.StartMonth, 0, MonthsPerYear-1)
	s.StartWeekOffset = clampInt(s.StartWeekOffset, 0, WeeksPerMonth-1)
	s.DurationWeeks = clampInt(s.DurationWeeks, 1, s.MaxDurationWeeks())
	return s
}

// LegacyDurationMonths is the month-granularity duration kept in the
// "duration" column for older readers.
func (s Schedule) LegacyDurationMonths() int {
	return ceilDiv(s.DurationWeeks, WeeksPerMonth)
}

// LegacyWeekOffset is the partial-month remainder kept in the "week_offset" column.
func (s Schedule) LegacyWeekOffset() int {
	return s.DurationWeeks % WeeksPerMonth
}

// String formats the schedule as "Mar w2 +6w".
func (s Schedule) String() string {
	return fmt.Sprintf("%s w%d +%dw", MonthShortName(s.StartMonth), s.StartWeekOffset+1, s.DurationWeeks)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
