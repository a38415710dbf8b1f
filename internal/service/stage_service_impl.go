package service

import (
	"context"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/google/uuid"
)

type stageService struct {
	stages   repository.StageRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewStageService(stages repository.StageRepo, uow db.UnitOfWork, observers ...UseCaseObserver) StageService {
	return &stageService{stages: stages, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *stageService) ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error) {
	return s.stages.ListByProject(ctx, projectID)
}

func (s *stageService) SaveAll(ctx context.Context, projectID string, stages []domain.Stage) (saved []domain.Stage, err error) {
	fields := map[string]any{"project_id": projectID}
	defer observe(ctx, s.observer, "save-stages", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		saved, err = syncStages(ctx, repository.NewSQLStageRepo(tx), projectID, stages, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// syncStages makes the project's stored stages equal to stages and returns
// them as stored. Counts of the rows it touched are added to fields.
func syncStages(
	ctx context.Context,
	repo repository.StageRepo,
	projectID string,
	stages []domain.Stage,
	fields map[string]any,
) ([]domain.Stage, error) {
	saved := make([]domain.Stage, len(stages))
	copy(saved, stages)

	existing, err := repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[e.ID] = true
	}
	keep := make(map[string]bool, len(saved))
	for _, st := range saved {
		if known[st.ID] {
			keep[st.ID] = true
		}
	}

	var deleted, inserted, updated int
	for _, e := range existing {
		if keep[e.ID] {
			continue
		}
		if err := repo.Delete(ctx, e.ID); err != nil {
			return nil, err
		}
		deleted++
	}

	for i := range saved {
		st := &saved[i]
		st.ProjectID = projectID
		st.Position = i
		st.Normalize()
		if err := st.Validate(); err != nil {
			return nil, err
		}
		if known[st.ID] {
			if err := repo.Update(ctx, st); err != nil {
				return nil, err
			}
			updated++
			continue
		}
		st.ID = uuid.New().String()
		if err := repo.Create(ctx, st); err != nil {
			return nil, err
		}
		inserted++
	}
	fields["deleted"] = deleted
	fields["inserted"] = inserted
	fields["updated"] = updated
	return saved, nil
}

func (s *stageService) UpdateSchedule(ctx context.Context, id string, sched domain.Schedule) (stored domain.Schedule, err error) {
	defer observe(ctx, s.observer, "update-stage-schedule", map[string]any{
		"stage_id": id,
		"schedule": sched.String(),
	})(&err)

	stored = sched.Clamp()
	if err = s.stages.UpdateSchedule(ctx, id, stored); err != nil {
		return domain.Schedule{}, err
	}
	return stored, nil
}

func (s *stageService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-stage", map[string]any{"stage_id": id})(&err)
	return s.stages.Delete(ctx, id)
}
