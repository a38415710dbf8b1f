package timeline

import (
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const w = CellWidth

func TestDrag_EndEdgeScenario(t *testing.T) {
	orig := domain.Schedule{StartMonth: 2, StartWeekOffset: 0, DurationWeeks: 8}
	d := Begin(EdgeEnd, orig, 500).Move(500+3*w, w)

	final, changed, idle := d.Release()
	assert.True(t, changed)
	assert.False(t, idle.Active())
	assert.Equal(t, domain.Schedule{StartMonth: 2, StartWeekOffset: 0, DurationWeeks: 11}, final)
}

func TestDrag_StartEdgeScenario(t *testing.T) {
	orig := domain.Schedule{StartMonth: 2, StartWeekOffset: 0, DurationWeeks: 4}
	d := Begin(EdgeStart, orig, 300).Move(300-w, w)

	final, changed, _ := d.Release()
	require.True(t, changed)
	assert.Equal(t, 7, final.StartWeek())
	assert.Equal(t, domain.Schedule{StartMonth: 1, StartWeekOffset: 3, DurationWeeks: 4}, final)
}

func TestDrag_ComputesFromSnapshot(t *testing.T) {
	orig := domain.Schedule{StartMonth: 4, DurationWeeks: 6}
	d := Begin(EdgeEnd, orig, 0)
	for x := 0; x < 10*w; x += 3 {
		d = d.Move(x, w)
	}
	d = d.Move(2*w, w)
	assert.Equal(t, 8, d.Current.DurationWeeks)
	assert.Equal(t, orig, d.Original)
}

func TestDrag_ReturnToOriginIsNoop(t *testing.T) {
	orig := domain.Schedule{StartMonth: 6, StartWeekOffset: 2, DurationWeeks: 3}
	d := Begin(EdgeStart, orig, 100).Move(100+5*w, w).Move(100+w/3, w)

	final, changed, _ := d.Release()
	assert.False(t, changed)
	assert.Equal(t, orig, final)
}

func TestDrag_IdleIgnoresMoves(t *testing.T) {
	var d Drag
	d = d.Move(400, w)
	assert.False(t, d.Active())
	_, changed, _ := d.Release()
	assert.False(t, changed)
}

func TestDrag_Rounding(t *testing.T) {
	assert.Equal(t, 0, DeltaWeeks(13, w))
	assert.Equal(t, 1, DeltaWeeks(14, w))
	assert.Equal(t, 0, DeltaWeeks(-14, w), "halves round toward +inf")
	assert.Equal(t, -1, DeltaWeeks(-15, w))
	assert.Equal(t, -1, DeltaWeeks(-42, w))
	assert.Equal(t, -2, DeltaWeeks(-43, w))
	assert.Equal(t, 2, DeltaWeeks(50, w))
	assert.Equal(t, 0, DeltaWeeks(50, 0))
}

func TestReschedule_StartEdgeClamps(t *testing.T) {
	orig := domain.Schedule{StartMonth: 0, StartWeekOffset: 1, DurationWeeks: 4}
	assert.Equal(t, domain.Schedule{StartMonth: 0, StartWeekOffset: 0, DurationWeeks: 4}, Reschedule(orig, EdgeStart, -10))
	assert.Equal(t, domain.Schedule{StartMonth: 11, StartWeekOffset: 3, DurationWeeks: 4}, Reschedule(orig, EdgeStart, 100))
}

func TestReschedule_EndEdgeClamps(t *testing.T) {
	orig := domain.Schedule{StartMonth: 10, StartWeekOffset: 0, DurationWeeks: 4}
	assert.Equal(t, 8, Reschedule(orig, EdgeEnd, 30).DurationWeeks)
	assert.Equal(t, 1, Reschedule(orig, EdgeEnd, -30).DurationWeeks)
}

// Exhaustive over every valid schedule and a spread of deltas.
func TestReschedule_Properties(t *testing.T) {
	deltas := []int{-60, -47, -13, -4, -1, 0, 1, 3, 9, 47, 60}
	for m := 0; m < domain.MonthsPerYear; m++ {
		for o := 0; o < domain.WeeksPerMonth; o++ {
			for dur := 1; m*4+o+dur <= domain.TotalWeeks; dur++ {
				orig := domain.Schedule{StartMonth: m, StartWeekOffset: o, DurationWeeks: dur}
				for _, delta := range deltas {
					s := Reschedule(orig, EdgeStart, delta)
					assert.Equal(t, orig.DurationWeeks, s.DurationWeeks, "start edge keeps duration")
					assert.Equal(t, s.StartWeek(), s.StartMonth*4+s.StartWeekOffset, "round trip")
					assert.True(t, s.StartWeek() >= 0 && s.StartWeek() <= domain.LastStartWeek)

					e := Reschedule(orig, EdgeEnd, delta)
					assert.Equal(t, orig.StartMonth, e.StartMonth, "end edge keeps start month")
					assert.Equal(t, orig.StartWeekOffset, e.StartWeekOffset, "end edge keeps offset")
					assert.NoError(t, e.Validate())
				}
			}
		}
	}
}

func TestEdgeAt(t *testing.T) {
	bar := Rect{Left: 10, Width: 8}
	assert.Equal(t, EdgeStart, EdgeAt(bar, 10, 2))
	assert.Equal(t, EdgeStart, EdgeAt(bar, 11, 2))
	assert.Equal(t, EdgeNone, EdgeAt(bar, 13, 2))
	assert.Equal(t, EdgeEnd, EdgeAt(bar, 16, 2))
	assert.Equal(t, EdgeEnd, EdgeAt(bar, 17, 2))
	assert.Equal(t, EdgeNone, EdgeAt(bar, 18, 2))
	assert.Equal(t, EdgeEnd, EdgeAt(Rect{Left: 4, Width: 2}, 4, 2))
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "start", EdgeStart.String())
	assert.Equal(t, "end", EdgeEnd.String())
	assert.Equal(t, "none", EdgeNone.String())
}
