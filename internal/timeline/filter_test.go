package timeline

import (
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMonthRange_Overlaps(t *testing.T) {
	s := domain.Schedule{StartMonth: 5, DurationWeeks: 4}
	assert.True(t, MonthRange{Start: 4, End: 6}.Overlaps(s))
	assert.False(t, MonthRange{Start: 0, End: 4}.Overlaps(s))
	assert.True(t, MonthRange{Start: 5, End: 5}.Overlaps(s))
	assert.False(t, MonthRange{Start: 6, End: 11}.Overlaps(s))

	// A partial trailing week counts toward the next month.
	s.DurationWeeks = 5
	assert.True(t, MonthRange{Start: 6, End: 11}.Overlaps(s))
}

func TestFilter_Matches(t *testing.T) {
	p := &domain.Project{Name: "SP Nord - Reparatii fatada", Schedule: domain.Schedule{StartMonth: 3, DurationWeeks: 8}}

	f := NewFilter()
	assert.False(t, f.Active())
	assert.True(t, f.Matches(p))

	f.Query = "nord"
	assert.True(t, f.Active())
	assert.True(t, f.Matches(p))

	f.Query = "sud"
	assert.False(t, f.Matches(p))

	f.Query = "FATADA"
	f.Range = MonthRange{Start: 5, End: 11}
	assert.False(t, f.Matches(p))
	f.Range = MonthRange{Start: 4, End: 11}
	assert.True(t, f.Matches(p))
}

func TestFilter_Apply(t *testing.T) {
	projects := []domain.Project{
		{Name: "Uzina Arcuda", Schedule: domain.Schedule{StartMonth: 0, DurationWeeks: 12}},
		{Name: "Baraj Crivina", Schedule: domain.Schedule{StartMonth: 5, DurationWeeks: 12}},
		{Name: "Uzina Crivina", Schedule: domain.Schedule{StartMonth: 4, DurationWeeks: 12}},
	}
	f := Filter{Query: "uzina", Range: MonthRange{Start: 5, End: 11}}
	assert.Equal(t, []int{2}, f.Apply(projects))
	assert.Equal(t, []int{0, 1, 2}, NewFilter().Apply(projects))
}
