package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	stages   repository.StageRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	stages repository.StageRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		stages:   stages,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create appends the project at the end of its year and inserts any stages
// it carries.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "create-project", map[string]any{"year_id": p.YearID})(&err)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Normalize()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLProjectRepo(tx)

		last, err := txProjects.MaxSortOrder(ctx, p.YearID)
		if err != nil {
			return err
		}
		p.SortOrder = last + 1
		if err := p.Validate(); err != nil {
			return err
		}
		if err := txProjects.Create(ctx, p); err != nil {
			return err
		}
		return createStages(ctx, repository.NewSQLStageRepo(tx), p)
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Stages, err = s.stages.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) ListByYear(ctx context.Context, yearID string) ([]domain.Project, error) {
	projects, err := s.projects.ListByYear(ctx, yearID)
	if err != nil {
		return nil, err
	}
	stages, err := s.stages.ListByYear(ctx, yearID)
	if err != nil {
		return nil, err
	}
	return attachStages(projects, stages), nil
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "update-project", map[string]any{"project_id": p.ID})(&err)

	p.Normalize()
	if err = p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = nowUTC()
	return s.projects.Update(ctx, p)
}

// UpdateWithStages stores the project's fields and makes its stages equal to
// p.Stages in one transaction. p.Stages is replaced by the stored stages.
func (s *projectService) UpdateWithStages(ctx context.Context, p *domain.Project) (err error) {
	fields := map[string]any{"project_id": p.ID}
	defer observe(ctx, s.observer, "update-project-with-stages", fields)(&err)

	p.Normalize()
	if err = p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = nowUTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLProjectRepo(tx).Update(ctx, p); err != nil {
			return err
		}
		saved, err := syncStages(ctx, repository.NewSQLStageRepo(tx), p.ID, p.Stages, fields)
		if err != nil {
			return err
		}
		p.Stages = saved
		return nil
	})
}

func (s *projectService) UpdateSchedule(ctx context.Context, id string, sched domain.Schedule) (stored domain.Schedule, err error) {
	defer observe(ctx, s.observer, "update-project-schedule", map[string]any{
		"project_id": id,
		"schedule":   sched.String(),
	})(&err)

	stored = sched.Clamp()
	if err = s.projects.UpdateSchedule(ctx, id, stored); err != nil {
		return domain.Schedule{}, err
	}
	return stored, nil
}

// Reorder writes only the rows whose position changed, in one transaction.
// ids must name exactly the year's projects.
func (s *projectService) Reorder(ctx context.Context, yearID string, ids []string) (err error) {
	fields := map[string]any{"year_id": yearID, "count": len(ids)}
	defer observe(ctx, s.observer, "reorder-projects", fields)(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLProjectRepo(tx)

		existing, err := txProjects.ListByYear(ctx, yearID)
		if err != nil {
			return err
		}
		current := make(map[string]int, len(existing))
		for _, p := range existing {
			current[p.ID] = p.SortOrder
		}
		if err := sameProjects(current, ids); err != nil {
			return err
		}

		changes := timeline.SortChanges(ids, current)
		fields["changed"] = len(changes)
		for _, c := range changes {
			if err := txProjects.UpdateSortOrder(ctx, c.ID, c.SortOrder); err != nil {
				return err
			}
		}
		return nil
	})
}

func sameProjects(current map[string]int, ids []string) error {
	if len(ids) != len(current) {
		return fmt.Errorf("%w: reorder lists %d projects, year has %d", domain.ErrInvalid, len(ids), len(current))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := current[id]; !ok || seen[id] {
			return fmt.Errorf("%w: project %s is not in the year or listed twice", domain.ErrInvalid, id)
		}
		seen[id] = true
	}
	return nil
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-project", map[string]any{"project_id": id})(&err)
	return s.projects.Delete(ctx, id)
}
