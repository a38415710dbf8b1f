package domain

import (
	"fmt"
	"strings"
)

// Stage is a sub-interval of a project, drawn as a nested narrower bar.
type Stage struct {
	ID        string
	ProjectID string
	Name      string
	Schedule  Schedule
	Position  int // order within the project
}

func (s *Stage) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: stage name is required", ErrInvalid)
	}
	return s.Schedule.Validate()
}

// Normalize trims the name and clamps the schedule into the grid.
func (s *Stage) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Schedule = s.Schedule.Clamp()
}

// DefaultStageName names the n-th (1-based) stage added to a project.
func DefaultStageName(n int) string {
	return fmt.Sprintf("Etapa Nouă %d", n)
}
