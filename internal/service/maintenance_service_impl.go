package service

import (
	"context"
	"math/rand/v2"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
)

// resetSchedule is where ResetSchedules puts every project.
var resetSchedule = domain.Schedule{StartMonth: 0, StartWeekOffset: 0, DurationWeeks: 4}

type maintenanceService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMaintenanceService(uow db.UnitOfWork, observers ...UseCaseObserver) MaintenanceService {
	return &maintenanceService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *maintenanceService) ResetSchedules(ctx context.Context, yearID string, rng *rand.Rand) (count int, err error) {
	fields := map[string]any{"year_id": yearID}
	defer observe(ctx, s.observer, "reset-schedules", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLProjectRepo(tx)

		var projects []*domain.Project
		var err error
		if yearID != "" {
			projects, err = txProjects.ListByYear(ctx, yearID)
		} else {
			projects, err = txProjects.ListAll(ctx)
		}
		if err != nil {
			return err
		}

		now := nowUTC()
		for _, p := range projects {
			p.Schedule = resetSchedule
			p.Progress = 0
			p.Color = domain.PickPaletteColor(rng)
			p.UpdatedAt = now
			if err := txProjects.Update(ctx, p); err != nil {
				return err
			}
		}
		count = len(projects)
		return nil
	})
	fields["count"] = count
	if err != nil {
		return 0, err
	}
	return count, nil
}
