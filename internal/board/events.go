package board

import (
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

type (
	// Loaded carries the projects of the year, or the load error.
	Loaded struct {
		Projects []domain.Project
		Err      error
	}

	SearchChanged  struct{ Query string }
	RangeChanged   struct{ Range timeline.MonthRange }
	ToggleExpand   struct{ ProjectID string }
	CursorMoved    struct{ Delta int }
	CursorSet      struct{ Row int }
	ErrorDismissed struct{}
	HeaderToggled  struct{}

	// DragStarted is a pointer-down on a bar edge at pointer X.
	DragStarted struct {
		Target Target
		Edge   timeline.Edge
		X      int
	}
	// DragMoved is a pointer move to X on a grid of week width W.
	DragMoved struct {
		X int
		W int
	}
	// DragReleased is the pointer-up that ends the gesture.
	DragReleased struct{}

	// ScheduleSaved confirms a SaveSchedule effect. Saved is the value the
	// store accepted after its own clamping.
	ScheduleSaved struct {
		Target    Target
		Attempted domain.Schedule
		Saved     domain.Schedule
	}
	// ScheduleSaveFailed reports a failed SaveSchedule effect.
	ScheduleSaveFailed struct {
		Target    Target
		Attempted domain.Schedule
		Previous  domain.Schedule
		Err       error
	}

	// ReorderRequested moves the visible project at position From onto
	// the visible position To.
	ReorderRequested struct{ From, To int }
	OrderSaved       struct{}
	// OrderSaveFailed reports a failed SaveOrder effect. Attempted is the
	// order that was being stored.
	OrderSaveFailed struct {
		Attempted []string
		Previous  []string
		Err       error
	}

	// OpStarted and OpFinished bracket any other persistence call the UI
	// makes (form saves, deletes) so the saving indicator covers them.
	OpStarted  struct{}
	OpFinished struct{ Err error }

	// ProjectUpserted replaces (or appends) a project after an edit.
	ProjectUpserted struct{ Project domain.Project }
	ProjectRemoved  struct{ ID string }
)

func (Loaded) event()             {}
func (SearchChanged) event()      {}
func (RangeChanged) event()       {}
func (ToggleExpand) event()       {}
func (CursorMoved) event()        {}
func (CursorSet) event()          {}
func (ErrorDismissed) event()     {}
func (HeaderToggled) event()      {}
func (DragStarted) event()        {}
func (DragMoved) event()          {}
func (DragReleased) event()       {}
func (ScheduleSaved) event()      {}
func (ScheduleSaveFailed) event() {}
func (ReorderRequested) event()   {}
func (OrderSaved) event()         {}
func (OrderSaveFailed) event()    {}
func (OpStarted) event()          {}
func (OpFinished) event()         {}
func (ProjectUpserted) event()    {}
func (ProjectRemoved) event()     {}

// Effect is a persistence request emitted by Reduce.
type Effect interface {
	effect()
}

// SaveSchedule asks for one write of a bar's schedule.
type SaveSchedule struct {
	Target   Target
	Schedule domain.Schedule
	Previous domain.Schedule
}

// SaveOrder asks for the year's projects to be stored in the given order.
type SaveOrder struct {
	YearID   string
	IDs      []string
	Previous []string
}

func (SaveSchedule) effect() {}
func (SaveOrder) effect()    {}
