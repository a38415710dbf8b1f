package domain

import (
	"fmt"
	"strings"
	"time"
)

// Project is a schedulable work item of a contract year, drawn as one bar.
type Project struct {
	ID           string
	ContractID   string
	YearID       string
	Name         string
	Schedule     Schedule
	Color        string
	Progress     int
	ShowProgress bool
	SortOrder    int
	DriveLink    string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Stages is populated by loaders that join the stage table.
	Stages []Stage
}

// Validate checks the persisted invariants of a project.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	if p.ContractID == "" || p.YearID == "" {
		return fmt.Errorf("%w: project must belong to a contract and a year", ErrInvalid)
	}
	if err := p.Schedule.Validate(); err != nil {
		return err
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("%w: progress %d out of range 0-100", ErrInvalid, p.Progress)
	}
	if err := ValidateColor(p.Color); err != nil {
		return err
	}
	if p.SortOrder < 0 {
		return fmt.Errorf("%w: negative sort order %d", ErrInvalid, p.SortOrder)
	}
	return nil
}

// Normalize applies the save-boundary clamps: schedule into the grid,
// progress into 0-100, and a default colour.
func (p *Project) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Schedule = p.Schedule.Clamp()
	p.Progress = clampInt(p.Progress, 0, 100)
	p.Color = NormalizeColor(p.Color)
}

// ProgressBucket returns the colour bucket of the project's progress.
func (p *Project) ProgressBucket() ProgressBucket {
	return BucketFor(p.Progress)
}

// Clone returns a deep copy including the stage slice.
func (p Project) Clone() Project {
	if p.Stages != nil {
		stages := make([]Stage, len(p.Stages))
		copy(stages, p.Stages)
		p.Stages = stages
	}
	return p
}
