package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
	busy       bool
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func (v *stubView) saving() bool             { return v.busy }

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func newStubModel(t *testing.T, views ...View) appModel {
	t.Helper()
	return newAppModel(&SharedState{App: testApp(t)}, views)
}

func TestAppModel_NavigationMessages(t *testing.T) {
	base := newStubView(ViewContractPicker, "", "contracts")
	m := newStubModel(t, base)
	v2 := newStubView(ViewYearPicker, "Sector 3", "years")
	v3 := newStubView(ViewGantt, "2025", "chart")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, _ = m.Update(pushViewMsg{view: v3})
	m = model.(appModel)
	assert.Contains(t, m.View(), "ganttplan › Sector 3 › 2025")

	model, cmd = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)

	model, _ = m.Update(replaceViewMsg{views: []View{v3}})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, v3, m.activeView())

	// The last view is never popped.
	model, _ = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_WindowResizeForwardsToActiveView(t *testing.T) {
	v := newStubView(ViewGantt, "2025", "chart")
	m := newStubModel(t, v)

	model, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)
	require.Nil(t, cmd)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	assert.Equal(t, 25, m.state.ContentHeight())
	assert.NotZero(t, m.cmdBar.input.Width)
	require.Len(t, v.updateSeen, 1)
	_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
	assert.True(t, ok)
}

func TestAppModel_MouseIsRelativeToContent(t *testing.T) {
	v := newStubView(ViewGantt, "2025", "chart")
	m := newStubModel(t, v)

	model, _ := m.Update(tea.MouseMsg{X: 30, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = model.(appModel)
	require.Len(t, v.updateSeen, 1)
	got := v.updateSeen[0].(tea.MouseMsg)
	assert.Equal(t, 30, got.X)
	assert.Equal(t, 7-headerLines, got.Y)
}

func TestAppModel_BoardMessagesReachChartUnderForm(t *testing.T) {
	chart := newStubView(ViewGantt, "2025", "chart")
	form := newStubView(ViewForm, "Edit", "form")
	m := newStubModel(t, chart, form)

	model, _ := m.Update(boardMsg{})
	m = model.(appModel)
	require.Len(t, chart.updateSeen, 1)
	assert.Empty(t, form.updateSeen)
}

func TestAppModel_KeyHandling_GlobalAndCaptured(t *testing.T) {
	t.Run("colon focuses command bar", func(t *testing.T) {
		m := newStubModel(t, newStubView(ViewGantt, "2025", "chart"))
		require.False(t, m.cmdBar.Focused())

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.True(t, m.cmdBar.Focused())
	})

	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		m := newStubModel(t, newStubView(ViewContractPicker, "", "contracts"))

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("capturing view receives q and does not quit", func(t *testing.T) {
		v := newStubView(ViewForm, "Edit", "form")
		m := newStubModel(t, v)

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc pops back stack", func(t *testing.T) {
		m := newStubModel(t,
			newStubView(ViewContractPicker, "", "contracts"),
			newStubView(ViewYearPicker, "Sector 3", "years"),
		)

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Nil(t, cmd)
		require.Len(t, m.viewStack, 1)
	})

	t.Run("esc with output only dismisses it", func(t *testing.T) {
		m := newStubModel(t,
			newStubView(ViewContractPicker, "", "contracts"),
			newStubView(ViewYearPicker, "Sector 3", "years"),
		)
		m.lastOutput = "stale output"
		m.outputActive = true

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Len(t, m.viewStack, 2)
		assert.Empty(t, m.lastOutput)
		assert.False(t, m.outputActive)
	})
}

func TestAppModel_WizardCompleteRunsNextCmd(t *testing.T) {
	m := newStubModel(t,
		newStubView(ViewGantt, "2025", "chart"),
		newStubView(ViewForm, "Edit", "form"),
	)
	next := func() tea.Msg { return cmdOutputMsg{output: "done"} }

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(appModel)
	require.NotNil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, cmdOutputMsg{output: "done"}, cmd())

	model, cmd = m.Update(cmdOutputMsg{output: "hello"})
	m = model.(appModel)
	require.Nil(t, cmd)
	assert.Contains(t, m.View(), "hello")
}

func TestAppModel_StoreDoneShowsResultAndRefreshes(t *testing.T) {
	a := newStubView(ViewContractPicker, "", "contracts")
	b := newStubView(ViewYearPicker, "Sector 3", "years")
	m := newStubModel(t, a, b)

	model, cmd := m.Update(storeDoneMsg{output: "Added year 2026"})
	m = model.(appModel)
	assert.Contains(t, m.lastOutput, "Added year 2026")
	require.NotNil(t, cmd)

	// Refresh is broadcast to every view, not just the active one.
	model, _ = m.Update(refreshViewMsg{})
	m = model.(appModel)
	assert.IsType(t, refreshViewMsg{}, a.updateSeen[len(a.updateSeen)-1])
	assert.IsType(t, refreshViewMsg{}, b.updateSeen[len(b.updateSeen)-1])

	model, _ = m.Update(storeDoneMsg{err: fmt.Errorf("year 2026 already exists")})
	m = model.(appModel)
	assert.Contains(t, m.lastOutput, "Error: year 2026 already exists")
}

func TestAppModel_HeaderShowsSaving(t *testing.T) {
	v := newStubView(ViewGantt, "2025", "chart")
	m := newStubModel(t, v)
	assert.NotContains(t, m.View(), "saving")

	v.busy = true
	assert.Contains(t, m.View(), "saving")
}

func TestAppModel_QuitWaitsForPendingSaves(t *testing.T) {
	q := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	v := newStubView(ViewGantt, "2025", "chart")
	v.busy = true
	m := newStubModel(t, v)

	model, cmd := m.Update(q)
	m = model.(appModel)
	assert.Nil(t, cmd)
	assert.False(t, m.quitting)
	assert.Contains(t, m.View(), "Press q again")

	// Any other key disarms the guard.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = model.(appModel)
	model, _ = m.Update(q)
	m = model.(appModel)
	assert.False(t, m.quitting)

	model, cmd = m.Update(q)
	m = model.(appModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewLogin, "Login", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewGantt, "2025", "")))

	g := &ganttView{}
	assert.False(t, viewCapturesInput(g))
	g.searching = true
	assert.True(t, viewCapturesInput(g))
}

func TestAppModel_OutputViewportScroll(t *testing.T) {
	m := newStubModel(t, newStubView(ViewGantt, "2025", "chart"))

	// Height 10 leaves a content height of 5.
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = model.(appModel)

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	model, _ = m.Update(cmdOutputMsg{output: strings.Join(lines, "\n")})
	m = model.(appModel)
	assert.True(t, m.outputActive)
	assert.Contains(t, m.View(), "line 1")
	assert.Contains(t, m.View(), "pgup/pgdn")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	// Non-scroll key dismisses.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = model.(appModel)
	assert.False(t, m.outputActive)
	assert.Empty(t, m.lastOutput)
}

func TestIsOutputScrollKey(t *testing.T) {
	scrollKeys := []tea.KeyType{
		tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD,
	}
	for _, k := range scrollKeys {
		assert.True(t, isOutputScrollKey(tea.KeyMsg{Type: k}), "expected scroll key: %v", k)
	}

	nonScrollKeys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyRunes, Runes: []rune{':'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
	}
	for _, k := range nonScrollKeys {
		assert.False(t, isOutputScrollKey(k), "expected non-scroll key: %v", k)
	}
}

func TestSplitShellArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "plain", input: "project list --search scoala", want: []string{"project", "list", "--search", "scoala"}},
		{name: "double quotes", input: `project add "Scoala 12"`, want: []string{"project", "add", "Scoala 12"}},
		{name: "single quotes", input: `comment add 1 'am "turnat" fundatia'`, want: []string{"comment", "add", "1", `am "turnat" fundatia`}},
		{name: "escaped space", input: `project add Bloc\ A`, want: []string{"project", "add", "Bloc A"}},
		{name: "empty quoted arg", input: `project edit 1 --link ""`, want: []string{"project", "edit", "1", "--link", ""}},
		{name: "unterminated", input: `project add "Scoala`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitShellArgs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScopeArgs(t *testing.T) {
	app := testApp(t)
	c, y := seedYear(t, app)
	state := &SharedState{App: app}

	parts := []string{"project", "list"}
	assert.Equal(t, parts, scopeArgs(state, parts), "no year open")

	state.SetContract(c)
	state.Year = y
	assert.Equal(t,
		[]string{"project", "list", "--contract", c.ID, "--year", "2025"},
		scopeArgs(state, parts))
	assert.Equal(t,
		[]string{"export", "png", "--year=2024", "--contract", c.ID},
		scopeArgs(state, []string{"export", "png", "--year=2024"}))
	assert.Equal(t,
		[]string{"contract", "list"},
		scopeArgs(state, []string{"contract", "list"}))
}
