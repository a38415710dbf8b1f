package service

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceService_ResetSchedules(t *testing.T) {
	r := setupRepos(t)
	year := r.seedYear(t)
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		p := testutil.NewTestProject(year, name,
			testutil.WithSortOrder(i),
			testutil.WithSchedule(i+3, 2, 10),
			testutil.WithProgress(60, true),
		)
		require.NoError(t, r.projects.Create(ctx, p))
	}

	svc := NewMaintenanceService(r.uow)
	n, err := svc.ResetSchedules(ctx, year.ID, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	list, err := r.projects.ListByYear(ctx, year.ID)
	require.NoError(t, err)
	for _, p := range list {
		assert.Equal(t, domain.Schedule{StartMonth: 0, StartWeekOffset: 0, DurationWeeks: 4}, p.Schedule)
		assert.Equal(t, 0, p.Progress)
		assert.Contains(t, domain.Palette, p.Color)
		assert.True(t, p.ShowProgress, "display flag is kept")
	}
}

func TestMaintenanceService_ResetAllYears(t *testing.T) {
	r := setupRepos(t)
	year := r.seedYear(t)
	ctx := context.Background()
	other := testutil.NewTestYear(year.ContractID, 2026)
	require.NoError(t, r.years.Create(ctx, other))
	r.seedProjects(t, year, "A")
	r.seedProjects(t, other, "B")

	n, err := NewMaintenanceService(r.uow).ResetSchedules(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
