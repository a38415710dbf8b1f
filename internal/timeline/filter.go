package timeline

import (
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

// MonthRange is an inclusive [Start, End] range of 0-based months.
type MonthRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullYear is the default, unrestricted range.
var FullYear = MonthRange{Start: 0, End: domain.MonthsPerYear - 1}

// IsFullYear reports whether the range excludes nothing.
func (r MonthRange) IsFullYear() bool {
	return r.Start <= 0 && r.End >= domain.MonthsPerYear-1
}

// Overlaps reports whether the schedule's month span
// [startMonth, startMonth+ceil(durationWeeks/4)-1] intersects the range.
func (r MonthRange) Overlaps(s domain.Schedule) bool {
	return !(s.LastMonth() < r.Start || s.StartMonth > r.End)
}

// Filter combines the free-text name search with the month range.
type Filter struct {
	Query string     `json:"query"`
	Range MonthRange `json:"range"`
}

// NewFilter returns a filter that keeps every project.
func NewFilter() Filter {
	return Filter{Range: FullYear}
}

// Active reports whether anything is being filtered out.
func (f Filter) Active() bool {
	return f.Query != "" || !f.Range.IsFullYear()
}

// Matches reports whether the project passes both the case-insensitive name
// search and the month-range overlap test.
func (f Filter) Matches(p *domain.Project) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
		return false
	}
	return f.Range.Overlaps(p.Schedule)
}

// Apply returns the indices of projects that match, in input order.
func (f Filter) Apply(projects []domain.Project) []int {
	idx := make([]int, 0, len(projects))
	for i := range projects {
		if f.Matches(&projects[i]) {
			idx = append(idx, i)
		}
	}
	return idx
}
