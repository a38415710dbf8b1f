package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFields_ApplyEditsStageList(t *testing.T) {
	p := domain.Project{
		Name:     "Bloc A",
		Schedule: domain.Schedule{StartMonth: 3, StartWeekOffset: 1, DurationWeeks: 12},
		Color:    domain.DefaultColor,
		Stages: []domain.Stage{
			{ID: "s1", Name: "Structura", Schedule: domain.Schedule{StartMonth: 3, DurationWeeks: 8}},
			{ID: "s2", Name: "Demolare", Schedule: domain.Schedule{StartMonth: 3, DurationWeeks: 2}},
		},
	}
	f := newProjectFields(p)
	require.NotNil(t, projectForm(f))

	f.name = " Bloc A reabilitare "
	f.stageEdits[0].name = "Structura si acoperis"
	f.stageEdits[0].sched.duration = "10"
	f.remove = []int{1}
	f.addStages = "1"
	f.apply(&p)

	assert.Equal(t, "Bloc A reabilitare", p.Name)
	require.Len(t, p.Stages, 2)
	assert.Equal(t, "s1", p.Stages[0].ID)
	assert.Equal(t, "Structura si acoperis", p.Stages[0].Name)
	assert.Equal(t, 10, p.Stages[0].Schedule.DurationWeeks)
	assert.Empty(t, p.Stages[1].ID, "added stage is new")
	assert.Equal(t, domain.DefaultStageName(2), p.Stages[1].Name)
	assert.Equal(t, domain.Schedule{StartMonth: 3, StartWeekOffset: 1, DurationWeeks: domain.WeeksPerMonth}, p.Stages[1].Schedule)
}

func TestProjectFields_EditSavesProjectAndStagesTogether(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 8})
	ctx := context.Background()
	_, err := app.Stages.SaveAll(ctx, p.ID, []domain.Stage{
		{Name: "Proiectare", Schedule: domain.Schedule{StartMonth: 1, DurationWeeks: 2}},
		{Name: "Executie", Schedule: domain.Schedule{StartMonth: 2, DurationWeeks: 4}},
	})
	require.NoError(t, err)

	loaded, err := app.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	edit := loaded.Clone()
	f := newProjectFields(edit)
	f.progress = "60"
	f.stageEdits[1].name = "Executie lucrari"
	f.remove = []int{0}
	f.apply(&edit)
	require.NoError(t, app.Projects.UpdateWithStages(ctx, &edit))

	fetched, err := app.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, fetched.Progress)
	require.Len(t, fetched.Stages, 1)
	assert.Equal(t, loaded.Stages[1].ID, fetched.Stages[0].ID)
	assert.Equal(t, "Executie lucrari", fetched.Stages[0].Name)
	assert.Equal(t, 0, fetched.Stages[0].Position)
}
