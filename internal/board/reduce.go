package board

import (
	"slices"
	"sort"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
)

// Reduce advances the state by one event. It never mutates its input and
// performs no I/O; persistence requests come back as effects.
func Reduce(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Loaded:
		s.Loading = false
		if e.Err != nil {
			s.Err = e.Err.Error()
			return s, nil
		}
		s.Projects = sortedBySortOrder(e.Projects)
		return s.clampCursor(), nil

	case SearchChanged:
		s.Filter.Query = e.Query
		s.Cursor = 0
		return s, nil

	case RangeChanged:
		r := e.Range
		if r.Start > r.End {
			r.Start, r.End = r.End, r.Start
		}
		s.Filter.Range = r
		s.Cursor = 0
		return s, nil

	case ToggleExpand:
		p, ok := s.Project(e.ProjectID)
		if !ok || len(p.Stages) == 0 {
			return s, nil
		}
		s.Expanded = cloneExpanded(s.Expanded)
		s.Expanded[e.ProjectID] = !s.Expanded[e.ProjectID]
		return s.clampCursor(), nil

	case CursorMoved:
		s.Cursor += e.Delta
		return s.clampCursor(), nil

	case CursorSet:
		s.Cursor = e.Row
		return s.clampCursor(), nil

	case ErrorDismissed:
		s.Err = ""
		return s, nil

	case HeaderToggled:
		s.HeaderHidden = !s.HeaderHidden
		return s, nil

	case DragStarted:
		if s.Drag.Active() || e.Edge == timeline.EdgeNone {
			return s, nil
		}
		sched, ok := s.ScheduleOf(e.Target)
		if !ok {
			return s, nil
		}
		s.Drag = timeline.Begin(e.Edge, sched, e.X)
		s.DragTarget = e.Target
		return s, nil

	case DragMoved:
		if !s.Drag.Active() {
			return s, nil
		}
		s.Drag = s.Drag.Move(e.X, e.W)
		return s.withSchedule(s.DragTarget, s.Drag.Current), nil

	case DragReleased:
		if !s.Drag.Active() {
			return s, nil
		}
		original := s.Drag.Original
		final, changed, idle := s.Drag.Release()
		target := s.DragTarget
		s.Drag = idle
		s.DragTarget = Target{}
		if !changed {
			return s, nil
		}
		s.Pending++
		return s, []Effect{SaveSchedule{Target: target, Schedule: final, Previous: original}}

	case ScheduleSaved:
		s.Pending = decPending(s.Pending)
		if cur, ok := s.ScheduleOf(e.Target); ok && cur == e.Attempted && e.Saved != e.Attempted {
			s = s.withSchedule(e.Target, e.Saved)
		}
		return s, nil

	case ScheduleSaveFailed:
		s.Pending = decPending(s.Pending)
		if e.Err != nil {
			s.Err = e.Err.Error()
		}
		// Restore the snapshot unless a newer gesture already moved the bar.
		if cur, ok := s.ScheduleOf(e.Target); ok && cur == e.Attempted {
			s = s.withSchedule(e.Target, e.Previous)
		}
		return s, nil

	case ReorderRequested:
		return s.reorder(e.From, e.To)

	case OrderSaved:
		s.Pending = decPending(s.Pending)
		return s, nil

	case OrderSaveFailed:
		s.Pending = decPending(s.Pending)
		if e.Err != nil {
			s.Err = e.Err.Error()
		}
		// A newer reorder already carries this move; its own save decides.
		if slices.Equal(s.ProjectIDs(), e.Attempted) {
			s.Projects = applyOrder(s.Projects, e.Previous)
		}
		return s, nil

	case OpStarted:
		s.Pending++
		return s, nil

	case OpFinished:
		s.Pending = decPending(s.Pending)
		if e.Err != nil {
			s.Err = e.Err.Error()
		}
		return s, nil

	case ProjectUpserted:
		projects := cloneProjects(s.Projects)
		if i := s.projectIndex(e.Project.ID); i >= 0 {
			projects[i] = e.Project.Clone()
		} else {
			projects = append(projects, e.Project.Clone())
		}
		s.Projects = sortedBySortOrder(projects)
		return s.clampCursor(), nil

	case ProjectRemoved:
		i := s.projectIndex(e.ID)
		if i < 0 {
			return s, nil
		}
		projects := make([]domain.Project, 0, len(s.Projects)-1)
		projects = append(projects, s.Projects[:i]...)
		projects = append(projects, s.Projects[i+1:]...)
		s.Projects = projects
		if s.Expanded[e.ID] {
			s.Expanded = cloneExpanded(s.Expanded)
			delete(s.Expanded, e.ID)
		}
		return s.clampCursor(), nil
	}
	return s, nil
}

// reorder moves the visible project at position from onto position to.
// Positions address the filtered list; the move is applied to the full
// list so hidden projects keep their relative places.
func (s State) reorder(from, to int) (State, []Effect) {
	visible := s.Visible()
	if from < 0 || from >= len(visible) || to < 0 || to >= len(visible) || from == to {
		return s, nil
	}
	previous := s.ProjectIDs()
	ordered := timeline.Move(previous, visible[from], visible[to])
	s.Projects = applyOrder(s.Projects, ordered)
	s.Pending++

	// Keep the cursor on the moved project.
	movedID := previous[visible[from]]
	for i, r := range s.Rows() {
		if r.Kind == RowProject && s.Projects[r.Project].ID == movedID {
			s.Cursor = i
			break
		}
	}
	return s, []Effect{SaveOrder{YearID: s.YearID, IDs: ordered, Previous: previous}}
}

// applyOrder arranges projects to follow ids and rewrites SortOrder to the
// new positions. Projects missing from ids keep their relative order at the end.
func applyOrder(projects []domain.Project, ids []string) []domain.Project {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	out := cloneProjects(projects)
	sort.SliceStable(out, func(a, b int) bool {
		pa, okA := pos[out[a].ID]
		pb, okB := pos[out[b].ID]
		switch {
		case okA && okB:
			return pa < pb
		case okA:
			return true
		default:
			return false
		}
	})
	for i := range out {
		out[i].SortOrder = i
	}
	return out
}

func sortedBySortOrder(projects []domain.Project) []domain.Project {
	out := cloneProjects(projects)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].SortOrder < out[b].SortOrder
	})
	return out
}

func (s State) clampCursor() State {
	n := len(s.Rows())
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	return s
}

func decPending(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
