// Package board holds the Gantt editor's application state as one
// serializable value and the pure reducer that advances it. Side effects
// (persistence writes) are returned as Effect values for the caller to run.
package board

import (
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
)

// Target addresses a bar: a project, or one of its stages when StageID is set.
type Target struct {
	ProjectID string `json:"project_id"`
	StageID   string `json:"stage_id,omitempty"`
}

// IsStage reports whether the target is a stage bar.
func (t Target) IsStage() bool {
	return t.StageID != ""
}

// RowKind distinguishes project rows from stage sub-rows.
type RowKind int

const (
	RowProject RowKind = iota
	RowStage
)

// Row is one visible line of the chart.
type Row struct {
	Kind    RowKind
	Project int // index into State.Projects
	Stage   int // index into Project.Stages, RowStage only
}

// State is the whole editor state for one contract year.
type State struct {
	ContractID string           `json:"contract_id"`
	YearID     string           `json:"year_id"`
	Projects   []domain.Project `json:"projects"`
	Filter     timeline.Filter  `json:"filter"`
	Expanded   map[string]bool  `json:"expanded"`
	Cursor     int              `json:"cursor"`

	Drag       timeline.Drag `json:"drag"`
	DragTarget Target        `json:"drag_target"`

	Pending      int    `json:"pending"`
	Err          string `json:"err,omitempty"`
	Loading      bool   `json:"loading"`
	HeaderHidden bool   `json:"header_hidden"`
}

// New returns the initial loading state for a contract year.
func New(contractID, yearID string) State {
	return State{
		ContractID: contractID,
		YearID:     yearID,
		Filter:     timeline.NewFilter(),
		Expanded:   map[string]bool{},
		Loading:    true,
	}
}

// Saving reports whether any persistence call is still in flight.
func (s State) Saving() bool {
	return s.Pending > 0
}

// Visible returns the indices of projects passing the filter, in display order.
func (s State) Visible() []int {
	return s.Filter.Apply(s.Projects)
}

// Rows flattens visible projects and the stages of expanded projects.
func (s State) Rows() []Row {
	var rows []Row
	for _, pi := range s.Visible() {
		rows = append(rows, Row{Kind: RowProject, Project: pi})
		p := &s.Projects[pi]
		if !s.Expanded[p.ID] {
			continue
		}
		for si := range p.Stages {
			rows = append(rows, Row{Kind: RowStage, Project: pi, Stage: si})
		}
	}
	return rows
}

// CursorRow returns the row under the cursor.
func (s State) CursorRow() (Row, bool) {
	rows := s.Rows()
	if s.Cursor < 0 || s.Cursor >= len(rows) {
		return Row{}, false
	}
	return rows[s.Cursor], true
}

// RowTarget converts a row into the bar it shows.
func (s State) RowTarget(r Row) Target {
	p := &s.Projects[r.Project]
	if r.Kind == RowStage {
		return Target{ProjectID: p.ID, StageID: p.Stages[r.Stage].ID}
	}
	return Target{ProjectID: p.ID}
}

// Project finds a project by ID.
func (s State) Project(id string) (domain.Project, bool) {
	if i := s.projectIndex(id); i >= 0 {
		return s.Projects[i], true
	}
	return domain.Project{}, false
}

// ScheduleOf returns the current in-memory schedule of a bar.
func (s State) ScheduleOf(t Target) (domain.Schedule, bool) {
	pi := s.projectIndex(t.ProjectID)
	if pi < 0 {
		return domain.Schedule{}, false
	}
	if !t.IsStage() {
		return s.Projects[pi].Schedule, true
	}
	si := stageIndex(s.Projects[pi].Stages, t.StageID)
	if si < 0 {
		return domain.Schedule{}, false
	}
	return s.Projects[pi].Stages[si].Schedule, true
}

// ProjectIDs returns the IDs of all projects in display order.
func (s State) ProjectIDs() []string {
	ids := make([]string, len(s.Projects))
	for i, p := range s.Projects {
		ids[i] = p.ID
	}
	return ids
}

func (s State) projectIndex(id string) int {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func stageIndex(stages []domain.Stage, id string) int {
	for i := range stages {
		if stages[i].ID == id {
			return i
		}
	}
	return -1
}

// withSchedule returns a copy of the state where the target bar holds sched.
// The project slice and the touched stage slice are copied, never aliased.
func (s State) withSchedule(t Target, sched domain.Schedule) State {
	pi := s.projectIndex(t.ProjectID)
	if pi < 0 {
		return s
	}
	projects := cloneProjects(s.Projects)
	p := projects[pi].Clone()
	if t.IsStage() {
		si := stageIndex(p.Stages, t.StageID)
		if si < 0 {
			return s
		}
		p.Stages[si].Schedule = sched
	} else {
		p.Schedule = sched
	}
	projects[pi] = p
	s.Projects = projects
	return s
}

func cloneProjects(in []domain.Project) []domain.Project {
	out := make([]domain.Project, len(in))
	copy(out, in)
	return out
}

func cloneExpanded(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
