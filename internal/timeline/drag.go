package timeline

import (
	"math"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

// Edge identifies which end of a bar a drag gesture holds.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeStart
	EdgeEnd
)

func (e Edge) String() string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeEnd:
		return "end"
	default:
		return "none"
	}
}

// Drag is the drag-to-reschedule state machine. The zero value is Idle.
// While dragging it keeps the schedule captured at pointer-down and the
// anchor X; every move is computed from that snapshot, never from the
// previous frame.
type Drag struct {
	Edge     Edge            `json:"edge"`
	Original domain.Schedule `json:"original"`
	AnchorX  int             `json:"anchor_x"`
	Current  domain.Schedule `json:"current"`
}

// Active reports whether a gesture is in progress.
func (d Drag) Active() bool {
	return d.Edge != EdgeNone
}

// Begin moves Idle -> Dragging on a pointer-down at x over the given edge.
func Begin(edge Edge, original domain.Schedule, x int) Drag {
	return Drag{Edge: edge, Original: original, AnchorX: x, Current: original}
}

// Move recomputes the schedule for pointer position x on a grid of
// week width w. It is a no-op while Idle.
func (d Drag) Move(x, w int) Drag {
	if !d.Active() {
		return d
	}
	d.Current = Reschedule(d.Original, d.Edge, DeltaWeeks(x-d.AnchorX, w))
	return d
}

// Release ends the gesture. It returns the final schedule and whether it
// differs from the snapshot in any of the three fields; only then should a
// single write be issued. The returned Drag is Idle.
func (d Drag) Release() (final domain.Schedule, changed bool, idle Drag) {
	if !d.Active() {
		return d.Current, false, Drag{}
	}
	return d.Current, d.Current != d.Original, Drag{}
}

// DeltaWeeks converts a pointer delta into whole weeks. Halves round up,
// so -14px on a 28px grid is 0 weeks and +14px is 1.
func DeltaWeeks(dx, w int) int {
	if w <= 0 {
		return 0
	}
	return int(math.Floor(float64(dx)/float64(w) + 0.5))
}

// Reschedule applies a week delta to one edge of the original schedule.
//
// Start edge: pos = clamp(start+delta, 0, 47), month = pos/4, offset = pos%4,
// duration unchanged. End edge: start unchanged,
// duration = clamp(duration+delta, 1, 48-start).
func Reschedule(orig domain.Schedule, edge Edge, delta int) domain.Schedule {
	switch edge {
	case EdgeStart:
		pos := clamp(orig.StartWeek()+delta, 0, domain.LastStartWeek)
		return domain.ScheduleAt(pos, orig.DurationWeeks)
	case EdgeEnd:
		s := orig
		s.DurationWeeks = clamp(orig.DurationWeeks+delta, 1, domain.TotalWeeks-orig.StartWeek())
		return s
	default:
		return orig
	}
}

// EdgeAt classifies a pointer x against a bar rectangle. The first and last
// cells (of width w) are the start and end affordances; a one-cell bar is
// treated as its end edge so it can still grow.
func EdgeAt(bar Rect, x, w int) Edge {
	if !bar.Contains(x) {
		return EdgeNone
	}
	if x >= bar.Right()-w {
		return EdgeEnd
	}
	if x < bar.Left+w {
		return EdgeStart
	}
	return EdgeNone
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
