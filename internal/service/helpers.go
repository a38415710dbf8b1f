package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
)

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// attachStages returns the projects as values with their stages filled in.
// stages must be grouped by project.
func attachStages(projects []*domain.Project, stages []domain.Stage) []domain.Project {
	byProject := make(map[string][]domain.Stage, len(projects))
	for _, s := range stages {
		byProject[s.ProjectID] = append(byProject[s.ProjectID], s)
	}
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		out[i] = *p
		out[i].Stages = byProject[p.ID]
	}
	return out
}

// createStages inserts the project's stages at their slice positions.
func createStages(ctx context.Context, stages repository.StageRepo, p *domain.Project) error {
	for i := range p.Stages {
		s := &p.Stages[i]
		s.ProjectID = p.ID
		s.Position = i
		s.Normalize()
		if err := s.Validate(); err != nil {
			return err
		}
		if err := stages.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
