package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/service"
	"github.com/alexanderramin/ganttplan/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Screen geometry of the chart at the default layout: two header lines,
// then toolbar, blank line and month header before the first row.
const (
	firstRowY = headerLines + 3
	gridLeft  = 22
	cellW     = 2
)

// barStartX and barEndX are the first and last screen columns of a bar.
func barStartX(s domain.Schedule) int { return gridLeft + s.StartWeek()*cellW }
func barEndX(s domain.Schedule) int   { return gridLeft + s.EndWeek()*cellW - 1 }

// openChart starts the TUI directly on the 2025 chart of the seeded contract.
func openChart(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	state := &SharedState{App: app}
	stack, err := initialStack(state, tuiOptions{contract: "Lucrari Sector 3", year: 2025})
	require.NoError(t, err)
	require.Len(t, stack, 3)

	d := teatest.New(t, newAppModel(state, stack), teatest.WithSize(160, 40))
	d.DrainInit()
	return d
}

func stored(t *testing.T, app *App, id string) domain.Schedule {
	t.Helper()
	p, err := app.Projects.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Schedule
}

func TestTUI_ChartShowsProjects(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 4})
	seedProject(t, app, y, "Gradinita", domain.Schedule{StartMonth: 6, DurationWeeks: 8})

	d := openChart(t, app)
	view := d.View()
	assert.Contains(t, view, "Lucrari Sector 3 › 2025")
	assert.Contains(t, view, "Scoala 12")
	assert.Contains(t, view, "Gradinita")
	assert.Contains(t, view, "2 of 2 projects")
	assert.Contains(t, view, "Feb w1, 4 weeks", "toolbar shows the selected bar")
}

func TestTUI_EmptyYear(t *testing.T) {
	app := testApp(t)
	seedYear(t, app)

	d := openChart(t, app)
	assert.Contains(t, d.View(), "No projects available")
}

func TestTUI_DragStartEdgeMovesBar(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 4})

	d := openChart(t, app)
	x := barStartX(p.Schedule)
	d.Drag(x, firstRowY, x+2*cellW, firstRowY)

	want := domain.Schedule{StartMonth: 1, StartWeekOffset: 2, DurationWeeks: 4}
	assert.Equal(t, want, stored(t, app, p.ID))
	assert.Contains(t, d.View(), "Feb w3, 4 weeks")
	assert.NotContains(t, d.View(), "saving")
}

func TestTUI_DragEndEdgeResizesBar(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 4})

	d := openChart(t, app)
	x := barEndX(p.Schedule)
	d.Drag(x, firstRowY, x+3*cellW, firstRowY)
	assert.Equal(t, domain.Schedule{StartMonth: 1, DurationWeeks: 7}, stored(t, app, p.ID))

	// Shrinking past the start stops at one week.
	x = barEndX(domain.Schedule{StartMonth: 1, DurationWeeks: 7})
	d.Drag(x, firstRowY, x-20*cellW, firstRowY)
	assert.Equal(t, domain.Schedule{StartMonth: 1, DurationWeeks: 1}, stored(t, app, p.ID))
}

func TestTUI_PressInsideBarDoesNotDrag(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 6})

	d := openChart(t, app)
	x := barStartX(p.Schedule) + 2*cellW
	d.Drag(x, firstRowY, x+4*cellW, firstRowY)
	assert.Equal(t, p.Schedule, stored(t, app, p.ID))
}

func TestTUI_ReleaseWithoutMovementWritesNothing(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 4})
	counting := &countingProjects{ProjectService: app.Projects}
	app.Projects = counting

	d := openChart(t, app)
	d.Click(barStartX(p.Schedule), firstRowY)
	// Less than half a week rounds to no change.
	d.Drag(barStartX(p.Schedule), firstRowY, barStartX(p.Schedule)+cellW/2-1, firstRowY)
	assert.Zero(t, counting.scheduleWrites)
}

func TestTUI_KeyboardMoveAndResize(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	seedProject(t, app, y, "A", domain.Schedule{StartMonth: 0, DurationWeeks: 4})
	b := seedProject(t, app, y, "B", domain.Schedule{StartMonth: 3, DurationWeeks: 4})

	d := openChart(t, app)
	d.PressDown()
	d.PressKey('>')
	d.PressKey('>')
	d.PressKey(']')
	assert.Equal(t, domain.Schedule{StartMonth: 3, StartWeekOffset: 2, DurationWeeks: 5}, stored(t, app, b.ID))

	d.PressKey('<')
	d.PressKey('[')
	d.PressKey('[')
	assert.Equal(t, domain.Schedule{StartMonth: 3, StartWeekOffset: 1, DurationWeeks: 3}, stored(t, app, b.ID))
}

func TestTUI_DragStageBar(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Bloc A", domain.Schedule{StartMonth: 2, DurationWeeks: 12})
	stages, err := app.Stages.SaveAll(context.Background(), p.ID, []domain.Stage{
		{Name: "Structura", Schedule: domain.Schedule{StartMonth: 2, DurationWeeks: 4}},
	})
	require.NoError(t, err)

	d := openChart(t, app)
	d.PressKey(' ')
	require.Contains(t, d.View(), "Structura")

	stageY := firstRowY + 1
	x := barEndX(stages[0].Schedule)
	d.Drag(x, stageY, x+2*cellW, stageY)

	got, err := app.Projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got.Stages, 1)
	assert.Equal(t, domain.Schedule{StartMonth: 2, DurationWeeks: 6}, got.Stages[0].Schedule)
	assert.Equal(t, p.Schedule, got.Schedule)
}

func TestTUI_ReorderByDraggingLabel(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	for _, name := range []string{"A", "B", "C"} {
		seedProject(t, app, y, name, domain.Schedule{DurationWeeks: 4})
	}

	d := openChart(t, app)
	d.Press(2, firstRowY)
	d.Release(2, firstRowY+2)
	assert.Equal(t, []string{"B", "C", "A"}, listNames(t, app, y.ID))

	// The cursor followed A to the last row.
	d.PressKey('J')
	assert.Equal(t, []string{"B", "C", "A"}, listNames(t, app, y.ID), "already last")
	d.PressKey('K')
	d.PressKey('K')
	assert.Equal(t, []string{"A", "B", "C"}, listNames(t, app, y.ID))
}

func TestTUI_SearchFiltersRows(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	seedProject(t, app, y, "Scoala 12", domain.Schedule{DurationWeeks: 4})
	seedProject(t, app, y, "Gradinita", domain.Schedule{DurationWeeks: 4})

	d := openChart(t, app)
	d.PressKey('/')
	d.Type("scoala")
	view := d.View()
	assert.Contains(t, view, "1 of 2 projects")
	assert.NotContains(t, view, "Gradinita")

	d.Type("xyz")
	assert.Contains(t, d.View(), "No projects match your filters")

	// q goes into the search box instead of quitting.
	d.PressKey('q')
	assert.False(t, d.Quitting)

	d.PressEsc()
	assert.Contains(t, d.View(), "2 of 2 projects")
}

func TestTUI_FailedSaveRollsBackAndShowsError(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 4})
	app.Projects = &failingProjects{ProjectService: app.Projects, err: errors.New("disk full")}

	d := openChart(t, app)
	x := barStartX(p.Schedule)
	d.Drag(x, firstRowY, x+4*cellW, firstRowY)

	view := d.View()
	assert.Contains(t, view, "disk full")
	assert.Contains(t, view, "Feb w1, 4 weeks", "bar snaps back to the stored schedule")
	assert.Equal(t, p.Schedule, stored(t, app, p.ID))

	d.PressKey('x')
	assert.NotContains(t, d.View(), "disk full")
}

func TestTUI_FailedReorderRestoresOrder(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	for _, name := range []string{"A", "B"} {
		seedProject(t, app, y, name, domain.Schedule{DurationWeeks: 4})
	}
	app.Projects = &failingProjects{ProjectService: app.Projects, err: errors.New("locked")}

	d := openChart(t, app)
	d.PressKey('J')
	assert.Contains(t, d.View(), "locked")
	assert.Equal(t, []string{"A", "B"}, listNames(t, app, y.ID))
}

func TestTUI_HeaderToggle(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	p := seedProject(t, app, y, "Scoala 12", domain.Schedule{StartMonth: 1, DurationWeeks: 4})

	d := openChart(t, app)
	d.PressKey('h')
	assert.NotContains(t, d.View(), "1 of 1 projects")

	// Rows moved up two lines with the toolbar hidden.
	x := barStartX(p.Schedule)
	d.Drag(x, firstRowY-2, x+cellW, firstRowY-2)
	assert.Equal(t, 5, stored(t, app, p.ID).StartWeek())
}

func TestTUI_NewProjectFormCancel(t *testing.T) {
	app := testApp(t)
	seedYear(t, app)

	d := openChart(t, app)
	d.PressKey('n')
	assert.Contains(t, d.View(), "New project")
	d.PressEsc()
	assert.Contains(t, d.View(), "Cancelled.")
}

func TestTUI_PickersOpenChart(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	seedProject(t, app, y, "Scoala 12", domain.Schedule{DurationWeeks: 4})

	state := &SharedState{App: app}
	d := teatest.New(t, newAppModel(state, []View{newContractPickerView(state)}), teatest.WithSize(160, 40))
	d.DrainInit()
	assert.Contains(t, d.View(), "Lucrari Sector 3")

	d.PressEnter()
	assert.Contains(t, d.View(), "2025")
	d.PressEnter()
	assert.Contains(t, d.View(), "Scoala 12")

	d.PressEsc()
	d.PressEsc()
	assert.Contains(t, d.View(), "Contracts")
}

func TestTUI_LoginView(t *testing.T) {
	app := testApp(t)
	seedYear(t, app)

	state := &SharedState{App: app}
	next := func() []View { return []View{newContractPickerView(state)} }
	d := teatest.New(t, newAppModel(state, []View{newLoginView(state, next)}), teatest.WithSize(160, 40))
	d.DrainInit()
	assert.Contains(t, d.View(), "No password is set yet")

	d.Send(loginResultMsg{err: service.ErrWrongPassword})
	assert.Contains(t, d.View(), "Wrong password")

	d.Send(loginResultMsg{})
	assert.Contains(t, d.View(), "Lucrari Sector 3")
}

func TestTUI_CommandBarRunsScopedCommands(t *testing.T) {
	app := testApp(t)
	_, y := seedYear(t, app)
	seedProject(t, app, y, "Scoala 12", domain.Schedule{DurationWeeks: 4})
	_, err := app.Contracts.Create(context.Background(), "Bloc Nou")
	require.NoError(t, err)

	d := openChart(t, app)
	d.PressKey(':')
	d.Type("project add Gradinita --start-month 5")
	d.PressEnter()

	assert.Equal(t, []string{"Scoala 12", "Gradinita"}, listNames(t, app, y.ID),
		"the open contract year scopes the command")
	assert.Contains(t, d.View(), "Added Gradinita")

	d.PressEsc() // leave the command bar
	d.PressEsc() // dismiss the output
	view := d.View()
	assert.Contains(t, view, "2 of 2 projects", "chart reloads after the command")
	assert.Contains(t, view, "Gradinita")
}

// failingProjects fails every schedule and order write.
type failingProjects struct {
	service.ProjectService
	err error
}

func (f *failingProjects) UpdateSchedule(context.Context, string, domain.Schedule) (domain.Schedule, error) {
	return domain.Schedule{}, f.err
}

func (f *failingProjects) Reorder(context.Context, string, []string) error {
	return f.err
}

type countingProjects struct {
	service.ProjectService
	scheduleWrites int
}

func (c *countingProjects) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) (domain.Schedule, error) {
	c.scheduleWrites++
	return c.ProjectService.UpdateSchedule(ctx, id, s)
}
