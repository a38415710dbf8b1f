package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/alexanderramin/ganttplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db        *sql.DB
	contracts repository.ContractRepo
	years     repository.YearRepo
	projects  repository.ProjectRepo
	stages    repository.StageRepo
	comments  repository.CommentRepo
	settings  repository.SettingsRepo
	uow       db.UnitOfWork
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:        database,
		contracts: repository.NewSQLContractRepo(database),
		years:     repository.NewSQLYearRepo(database),
		projects:  repository.NewSQLProjectRepo(database),
		stages:    repository.NewSQLStageRepo(database),
		comments:  repository.NewSQLCommentRepo(database),
		settings:  repository.NewSQLSettingsRepo(database),
		uow:       testutil.NewTestUoW(database),
	}
}

func (r repos) seedYear(t *testing.T) *domain.Year {
	t.Helper()
	ctx := context.Background()
	c := testutil.NewTestContract("Lucrari Sector 3")
	require.NoError(t, r.contracts.Create(ctx, c))
	y := testutil.NewTestYear(c.ID, 2025)
	require.NoError(t, r.years.Create(ctx, y))
	return y
}

// seedProjects inserts projects named after names with sort orders 0..n-1.
func (r repos) seedProjects(t *testing.T, year *domain.Year, names ...string) []*domain.Project {
	t.Helper()
	out := make([]*domain.Project, len(names))
	for i, name := range names {
		p := testutil.NewTestProject(year, name, testutil.WithSortOrder(i))
		require.NoError(t, r.projects.Create(context.Background(), p))
		out[i] = p
	}
	return out
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func names(projects []domain.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}
