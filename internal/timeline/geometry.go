// Package timeline holds the pure arithmetic of the yearly Gantt grid:
// bar geometry, the drag-to-reschedule state machine, list filtering and
// reordering. Nothing here performs I/O.
package timeline

import "github.com/alexanderramin/ganttplan/internal/domain"

// CellWidth is the pixel width of one week column in raster output.
const CellWidth = 28

// Rect is a horizontal interval on the grid, in the caller's units.
type Rect struct {
	Left  int
	Width int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Contains reports whether x falls inside [Left, Right).
func (r Rect) Contains(x int) bool {
	return x >= r.Left && x < r.Right()
}

// Geometry maps a schedule onto a grid of week columns of width w:
// left = (startMonth*4 + startWeekOffset) * w, width = durationWeeks * w.
// It performs no clamping; callers clamp before invoking.
func Geometry(s domain.Schedule, w int) Rect {
	return Rect{
		Left:  (s.StartMonth*domain.WeeksPerMonth + s.StartWeekOffset) * w,
		Width: s.DurationWeeks * w,
	}
}

// GridWidth is the full width of the 48-week grid.
func GridWidth(w int) int {
	return domain.TotalWeeks * w
}

// WeekAt returns the week column under x, or -1 outside the grid.
func WeekAt(x, w int) int {
	if w <= 0 || x < 0 || x >= GridWidth(w) {
		return -1
	}
	return x / w
}
