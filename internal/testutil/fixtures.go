package testutil

import (
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/google/uuid"
)

// now is truncated to the second so values survive the RFC3339 round trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func NewTestContract(name string) *domain.Contract {
	t := now()
	return &domain.Contract{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: t,
		UpdatedAt: t,
	}
}

func NewTestYear(contractID string, value int) *domain.Year {
	return &domain.Year{
		ID:         uuid.New().String(),
		ContractID: contractID,
		Value:      value,
		CreatedAt:  now(),
	}
}

// Project options
type ProjectOption func(*domain.Project)

func WithSchedule(startMonth, startWeekOffset, durationWeeks int) ProjectOption {
	return func(p *domain.Project) {
		p.Schedule = domain.Schedule{
			StartMonth:      startMonth,
			StartWeekOffset: startWeekOffset,
			DurationWeeks:   durationWeeks,
		}
	}
}

func WithSortOrder(n int) ProjectOption {
	return func(p *domain.Project) {
		p.SortOrder = n
	}
}

func WithProgress(pct int, show bool) ProjectOption {
	return func(p *domain.Project) {
		p.Progress = pct
		p.ShowProgress = show
	}
}

func WithColor(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Color = c
	}
}

func WithStages(stages ...domain.Stage) ProjectOption {
	return func(p *domain.Project) {
		p.Stages = stages
	}
}

func NewTestProject(year *domain.Year, name string, opts ...ProjectOption) *domain.Project {
	t := now()
	p := &domain.Project{
		ID:         uuid.New().String(),
		ContractID: year.ContractID,
		YearID:     year.ID,
		Name:       name,
		Schedule:   domain.Schedule{StartMonth: 0, DurationWeeks: 4},
		Color:      domain.DefaultColor,
		CreatedAt:  t,
		UpdatedAt:  t,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestStage(projectID, name string, position int, s domain.Schedule) *domain.Stage {
	return &domain.Stage{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Schedule:  s,
		Position:  position,
	}
}

func NewTestComment(projectID, author, content string, at time.Time) *domain.Comment {
	return &domain.Comment{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		AuthorName: author,
		Content:    content,
		CreatedAt:  at.UTC().Truncate(time.Second),
	}
}
