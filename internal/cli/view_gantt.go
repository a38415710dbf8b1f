package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/board"
	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/export"
	"github.com/alexanderramin/ganttplan/internal/localstate"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// boardMsg feeds events into the board reducer. When expand is set the
// project is expanded afterwards if it is not already.
type boardMsg struct {
	events []board.Event
	expand string
}

func boardEvents(evs ...board.Event) tea.Msg {
	return boardMsg{events: evs}
}

// ganttView is the chart editor of one contract year. All state lives in
// board.State; the view translates keys and mouse gestures into events and
// runs the effects the reducer returns.
type ganttView struct {
	state  *SharedState
	board  board.State
	layout formatter.GanttLayout
	offset int // first row on screen

	search    textinput.Model
	searching bool

	// visible position grabbed by a label drag, -1 when idle
	reorderFrom int
}

func newGanttView(state *SharedState) *ganttView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search projects"
	ti.CharLimit = 100

	return &ganttView{
		state:       state,
		board:       board.New(state.Contract.ID, state.Year.ID),
		layout:      formatter.DefaultLayout,
		search:      ti,
		reorderFrom: -1,
	}
}

func (v *ganttView) ID() ViewID { return ViewGantt }
func (v *ganttView) Title() string {
	return v.state.Year.String()
}

func (v *ganttView) capturesInput() bool { return v.searching }
func (v *ganttView) saving() bool        { return v.board.Saving() }

func (v *ganttView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("<", ">"), key.WithHelp("</>", "move")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "resize")),
		key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "reorder")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "stage")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "stages")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "months")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "png")),
	}
}

func (v *ganttView) Init() tea.Cmd {
	return v.load()
}

func (v *ganttView) load() tea.Cmd {
	app := v.state.App
	yearID := v.board.YearID
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		projects, err := app.Projects.ListByYear(ctx, yearID)
		return boardEvents(board.Loaded{Projects: projects, Err: err})
	}
}

// dispatch runs one event through the reducer and returns the effects as
// commands.
func (v *ganttView) dispatch(ev board.Event) tea.Cmd {
	next, effects := board.Reduce(v.board, ev)
	v.board = next
	v.scrollToCursor()
	return v.runEffects(effects)
}

func (v *ganttView) dispatchAll(evs ...board.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range evs {
		if cmd := v.dispatch(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (v *ganttView) runEffects(effects []board.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case board.SaveSchedule:
			cmds = append(cmds, v.saveScheduleCmd(e))
		case board.SaveOrder:
			cmds = append(cmds, v.saveOrderCmd(e))
		}
	}
	return tea.Batch(cmds...)
}

func (v *ganttView) saveScheduleCmd(e board.SaveSchedule) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		var stored domain.Schedule
		var err error
		if e.Target.IsStage() {
			stored, err = app.Stages.UpdateSchedule(ctx, e.Target.StageID, e.Schedule)
		} else {
			stored, err = app.Projects.UpdateSchedule(ctx, e.Target.ProjectID, e.Schedule)
		}
		if err != nil {
			app.logger().Error("save schedule", "project_id", e.Target.ProjectID, "stage_id", e.Target.StageID, "error", err)
			return boardEvents(board.ScheduleSaveFailed{
				Target: e.Target, Attempted: e.Schedule, Previous: e.Previous, Err: err,
			})
		}
		return boardEvents(board.ScheduleSaved{Target: e.Target, Attempted: e.Schedule, Saved: stored})
	}
}

func (v *ganttView) saveOrderCmd(e board.SaveOrder) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		if err := app.Projects.Reorder(ctx, e.YearID, e.IDs); err != nil {
			app.logger().Error("save order", "year_id", e.YearID, "error", err)
			return boardEvents(board.OrderSaveFailed{Attempted: e.IDs, Previous: e.Previous, Err: err})
		}
		return boardEvents(board.OrderSaved{})
	}
}

// storeOp brackets a write with OpStarted/OpFinished. fn returns the events
// to apply once the write succeeded.
func (v *ganttView) storeOp(expand string, fn func(ctx context.Context) ([]board.Event, error)) tea.Cmd {
	v.board, _ = board.Reduce(v.board, board.OpStarted{})
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		evs, err := fn(ctx)
		if err != nil {
			return boardEvents(board.OpFinished{Err: err})
		}
		return boardMsg{events: append([]board.Event{board.OpFinished{}}, evs...), expand: expand}
	}
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardMsg:
		cmd := v.dispatchAll(msg.events...)
		if msg.expand != "" && !v.board.Expanded[msg.expand] {
			cmd = tea.Batch(cmd, v.dispatch(board.ToggleExpand{ProjectID: msg.expand}))
		}
		return v, cmd

	case refreshViewMsg:
		return v, v.load()

	case tea.WindowSizeMsg:
		v.scrollToCursor()
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		if v.searching {
			return v, v.updateSearch(msg)
		}
		return v, v.handleKey(msg)
	}
	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *ganttView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		return v.dispatch(board.SearchChanged{Query: ""})
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if q := v.search.Value(); q != v.board.Filter.Query {
		return tea.Batch(cmd, v.dispatch(board.SearchChanged{Query: q}))
	}
	return cmd
}

func (v *ganttView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		return v.dispatch(board.CursorMoved{Delta: -1})
	case "down", "j":
		return v.dispatch(board.CursorMoved{Delta: 1})
	case "pgup":
		return v.dispatch(board.CursorMoved{Delta: -v.rowsHeight()})
	case "pgdown":
		return v.dispatch(board.CursorMoved{Delta: v.rowsHeight()})
	case "home", "g":
		return v.dispatch(board.CursorSet{Row: 0})
	case "end", "G":
		return v.dispatch(board.CursorSet{Row: len(v.board.Rows()) - 1})

	case "<":
		return v.keyGesture(timeline.EdgeStart, -1)
	case ">":
		return v.keyGesture(timeline.EdgeStart, 1)
	case "[":
		return v.keyGesture(timeline.EdgeEnd, -1)
	case "]":
		return v.keyGesture(timeline.EdgeEnd, 1)
	case "K":
		return v.keyReorder(-1)
	case "J":
		return v.keyReorder(1)

	case " ":
		if row, ok := v.board.CursorRow(); ok {
			return v.dispatch(board.ToggleExpand{ProjectID: v.board.Projects[row.Project].ID})
		}
	case "/":
		v.searching = true
		v.search.SetValue(v.board.Filter.Query)
		v.search.CursorEnd()
		return v.search.Focus()
	case "f":
		return v.rangeForm()
	case "F":
		return v.dispatch(board.RangeChanged{Range: timeline.FullYear})
	case "h":
		return v.dispatch(board.HeaderToggled{})
	case "x":
		return v.dispatch(board.ErrorDismissed{})
	case "r":
		return v.load()

	case "enter", "e":
		return v.editForm()
	case "n":
		return v.newProjectForm()
	case "a":
		return v.addStageForm()
	case "d":
		return v.deleteForm()
	case "c":
		if row, ok := v.board.CursorRow(); ok {
			return pushView(newCommentsView(v.state, v.board.Projects[row.Project]))
		}
	case "t":
		return v.cycleTheme()
	case "p":
		return v.exportPNG()
	}
	return nil
}

// keyGesture runs the drag state machine for a one-week keyboard move of
// the bar under the cursor, so keys and mouse share the clamp rules.
func (v *ganttView) keyGesture(edge timeline.Edge, weeks int) tea.Cmd {
	row, ok := v.board.CursorRow()
	if !ok || v.board.Drag.Active() {
		return nil
	}
	w := v.layout.CellWidth
	return v.dispatchAll(
		board.DragStarted{Target: v.board.RowTarget(row), Edge: edge, X: 0},
		board.DragMoved{X: weeks * w, W: w},
		board.DragReleased{},
	)
}

func (v *ganttView) keyReorder(delta int) tea.Cmd {
	row, ok := v.board.CursorRow()
	if !ok || row.Kind != board.RowProject {
		return nil
	}
	from := v.visiblePos(row.Project)
	return v.dispatch(board.ReorderRequested{From: from, To: from + delta})
}

// visiblePos returns the filtered position of a project index, or -1.
func (v *ganttView) visiblePos(projectIdx int) int {
	for i, pi := range v.board.Visible() {
		if pi == projectIdx {
			return i
		}
	}
	return -1
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (v *ganttView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return v.dispatch(board.CursorMoved{Delta: -1})
		case tea.MouseButtonWheelDown:
			return v.dispatch(board.CursorMoved{Delta: 1})
		case tea.MouseButtonLeft:
			return v.press(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if v.board.Drag.Active() {
			return v.dispatch(board.DragMoved{X: msg.X, W: v.layout.CellWidth})
		}

	case tea.MouseActionRelease:
		if v.board.Drag.Active() {
			if cmd := v.dispatch(board.DragMoved{X: msg.X, W: v.layout.CellWidth}); cmd != nil {
				return tea.Batch(cmd, v.dispatch(board.DragReleased{}))
			}
			return v.dispatch(board.DragReleased{})
		}
		if v.reorderFrom >= 0 {
			from := v.reorderFrom
			v.reorderFrom = -1
			rows := v.board.Rows()
			if i, ok := v.rowAt(msg.Y); ok && rows[i].Kind == board.RowProject {
				return v.dispatch(board.ReorderRequested{From: from, To: v.visiblePos(rows[i].Project)})
			}
		}
	}
	return nil
}

// press selects the row under the pointer. On a bar edge it starts a drag;
// on a project label it grabs the row for reordering.
func (v *ganttView) press(x, y int) tea.Cmd {
	i, ok := v.rowAt(y)
	if !ok {
		return nil
	}
	cmd := v.dispatch(board.CursorSet{Row: i})
	row := v.board.Rows()[i]

	if x < v.layout.GridLeft() {
		if row.Kind == board.RowProject {
			v.reorderFrom = v.visiblePos(row.Project)
		}
		return cmd
	}

	target := v.board.RowTarget(row)
	sched, ok := v.board.ScheduleOf(target)
	if !ok {
		return cmd
	}
	edge := timeline.EdgeAt(v.layout.BarRect(sched), x, v.layout.CellWidth)
	if edge == timeline.EdgeNone {
		return cmd
	}
	return tea.Batch(cmd, v.dispatch(board.DragStarted{Target: target, Edge: edge, X: x}))
}

// rowAt maps a content line to a row index.
func (v *ganttView) rowAt(y int) (int, bool) {
	idx := y - v.bodyTop()
	if idx < 0 || idx >= v.rowsHeight() {
		return 0, false
	}
	row := v.offset + idx
	if row >= len(v.board.Rows()) {
		return 0, false
	}
	return row, true
}

// ── forms and actions ────────────────────────────────────────────────────────

func (v *ganttView) editForm() tea.Cmd {
	row, ok := v.board.CursorRow()
	if !ok {
		return nil
	}
	p := v.board.Projects[row.Project].Clone()
	app := v.state.App

	if row.Kind == board.RowStage {
		stages := p.Stages
		f := newStageFields(stages[row.Stage])
		return startWizardCmd(v.state, "Edit stage", stageForm(f), func() tea.Cmd {
			f.apply(&stages[row.Stage])
			return v.storeOp("", func(ctx context.Context) ([]board.Event, error) {
				return saveStages(ctx, app, p.ID, stages)
			})
		})
	}

	f := newProjectFields(p)
	return startWizardCmd(v.state, "Edit "+p.Name, projectForm(f), func() tea.Cmd {
		f.apply(&p)
		return v.storeOp("", func(ctx context.Context) ([]board.Event, error) {
			if err := app.Projects.UpdateWithStages(ctx, &p); err != nil {
				return nil, err
			}
			return reloadProject(ctx, app, p.ID)
		})
	})
}

func (v *ganttView) newProjectForm() tea.Cmd {
	p := domain.Project{
		ContractID: v.board.ContractID,
		YearID:     v.board.YearID,
		Schedule:   domain.Schedule{DurationWeeks: domain.WeeksPerMonth},
		Color:      domain.PickPaletteColor(v.state.App.Rand),
	}
	f := newProjectFields(p)
	app := v.state.App
	return startWizardCmd(v.state, "New project", projectForm(f), func() tea.Cmd {
		f.apply(&p)
		return v.storeOp("", func(ctx context.Context) ([]board.Event, error) {
			if err := app.Projects.Create(ctx, &p); err != nil {
				return nil, err
			}
			return []board.Event{board.ProjectUpserted{Project: p}}, nil
		})
	})
}

func (v *ganttView) addStageForm() tea.Cmd {
	row, ok := v.board.CursorRow()
	if !ok {
		return nil
	}
	p := v.board.Projects[row.Project].Clone()
	st := domain.Stage{
		Name: domain.DefaultStageName(len(p.Stages) + 1),
		Schedule: domain.Schedule{
			StartMonth:      p.Schedule.StartMonth,
			StartWeekOffset: p.Schedule.StartWeekOffset,
			DurationWeeks:   domain.WeeksPerMonth,
		},
	}
	f := newStageFields(st)
	app := v.state.App
	return startWizardCmd(v.state, "New stage of "+p.Name, stageForm(f), func() tea.Cmd {
		f.apply(&st)
		return v.storeOp(p.ID, func(ctx context.Context) ([]board.Event, error) {
			return saveStages(ctx, app, p.ID, append(p.Stages, st))
		})
	})
}

func (v *ganttView) deleteForm() tea.Cmd {
	row, ok := v.board.CursorRow()
	if !ok {
		return nil
	}
	p := v.board.Projects[row.Project]
	app := v.state.App
	confirmed := false

	if row.Kind == board.RowStage {
		st := p.Stages[row.Stage]
		q := fmt.Sprintf("Delete stage %q of %q?", st.Name, p.Name)
		return startWizardCmd(v.state, "Delete stage", confirmForm(q, &confirmed), func() tea.Cmd {
			if !confirmed {
				return nil
			}
			return v.storeOp("", func(ctx context.Context) ([]board.Event, error) {
				if err := app.Stages.Delete(ctx, st.ID); err != nil {
					return nil, err
				}
				return reloadProject(ctx, app, p.ID)
			})
		})
	}

	q := fmt.Sprintf("Delete project %q with its stages and comments?", p.Name)
	return startWizardCmd(v.state, "Delete project", confirmForm(q, &confirmed), func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return v.storeOp("", func(ctx context.Context) ([]board.Event, error) {
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return nil, err
			}
			return []board.Event{board.ProjectRemoved{ID: p.ID}}, nil
		})
	})
}

func (v *ganttView) rangeForm() tea.Cmd {
	r := &rangeFields{start: v.board.Filter.Range.Start, end: v.board.Filter.Range.End}
	return startWizardCmd(v.state, "Filter months", rangeForm(r), func() tea.Cmd {
		return func() tea.Msg {
			return boardEvents(board.RangeChanged{Range: timeline.MonthRange{Start: r.start, End: r.end}})
		}
	})
}

func (v *ganttView) cycleTheme() tea.Cmd {
	next := domain.NextTheme(formatter.CurrentTheme())
	formatter.ApplyTheme(next)
	if _, err := v.state.App.State.Update(func(s *localstate.State) { s.Theme = next }); err != nil {
		return outputCmd(shellError(err))
	}
	return nil
}

func (v *ganttView) exportPNG() tea.Cmd {
	app := v.state.App
	chart := export.Chart{
		Contract: v.state.Contract.Name,
		Year:     v.state.Year.Value,
		Projects: v.board.Projects,
	}
	path := export.DefaultFileName(export.FormatPNG, app.now())
	return func() tea.Msg {
		if err := writeChartFile(path, export.FormatPNG, chart, true); err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		return cmdOutputMsg{output: formatter.StyleGreen.Render("Chart saved to " + path)}
	}
}

func saveStages(ctx context.Context, app *App, projectID string, stages []domain.Stage) ([]board.Event, error) {
	if _, err := app.Stages.SaveAll(ctx, projectID, stages); err != nil {
		return nil, err
	}
	return reloadProject(ctx, app, projectID)
}

func reloadProject(ctx context.Context, app *App, id string) ([]board.Event, error) {
	p, err := app.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return []board.Event{board.ProjectUpserted{Project: *p}}, nil
}

// ── rendering ────────────────────────────────────────────────────────────────

// bodyTop is the number of content lines above the first chart row.
func (v *ganttView) bodyTop() int {
	n := 1 // month header
	if !v.board.HeaderHidden {
		n += 2
	}
	if v.board.Err != "" {
		n++
	}
	return n
}

func (v *ganttView) rowsHeight() int {
	return max(1, v.state.ContentHeight()-v.bodyTop())
}

func (v *ganttView) scrollToCursor() {
	h := v.rowsHeight()
	if v.board.Cursor < v.offset {
		v.offset = v.board.Cursor
	}
	if v.board.Cursor >= v.offset+h {
		v.offset = v.board.Cursor - h + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *ganttView) View() string {
	var b strings.Builder

	if !v.board.HeaderHidden {
		b.WriteString(v.toolbar() + "\n\n")
	}
	if v.board.Err != "" {
		b.WriteString(formatter.StyleRed.Bold(true).Render("✖ "+v.board.Err) + "  " + formatter.Dim("x: dismiss") + "\n")
	}
	b.WriteString(formatter.MonthHeader(v.layout) + "\n")

	if v.board.Loading {
		b.WriteString("  " + formatter.Dim("Loading projects..."))
		return b.String()
	}
	rows := v.board.Rows()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim(emptyMessage(len(v.board.Projects), v.board.Filter)))
		return b.String()
	}

	end := min(len(rows), v.offset+v.rowsHeight())
	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderRow(rows[i], i == v.board.Cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *ganttView) renderRow(r board.Row, selected bool) string {
	p := v.board.Projects[r.Project]
	if r.Kind == board.RowStage {
		st := p.Stages[r.Stage]
		return formatter.GanttRow(v.layout, formatter.BarRow{
			Label:    st.Name,
			Schedule: st.Schedule,
			Color:    p.Color,
			Stage:    true,
			Selected: selected,
		})
	}
	return formatter.GanttRow(v.layout, projectBarRow(p, selected, v.board.Expanded[p.ID]))
}

func (v *ganttView) toolbar() string {
	var parts []string

	switch {
	case v.searching:
		parts = append(parts, v.search.View())
	case v.board.Filter.Query != "":
		parts = append(parts, formatter.StyleYellow.Render("/ "+v.board.Filter.Query))
	default:
		parts = append(parts, formatter.Dim("/ search"))
	}

	r := v.board.Filter.Range
	months := domain.MonthShortName(r.Start) + "–" + domain.MonthShortName(r.End)
	if r.IsFullYear() {
		parts = append(parts, formatter.Dim("months: "+months))
	} else {
		parts = append(parts, formatter.StyleYellow.Render("months: "+months))
	}

	parts = append(parts, formatter.Dim(fmt.Sprintf("%d of %d projects", len(v.board.Visible()), len(v.board.Projects))))

	if v.board.Drag.Active() {
		parts = append(parts, formatter.StyleBlue.Render(v.board.Drag.Edge.String()+": "+formatter.ScheduleText(v.board.Drag.Current)))
	} else if row, ok := v.board.CursorRow(); ok {
		if sched, ok := v.board.ScheduleOf(v.board.RowTarget(row)); ok {
			parts = append(parts, formatter.Dim(formatter.ScheduleText(sched)))
		}
	}
	return "  " + strings.Join(parts, "   ")
}
