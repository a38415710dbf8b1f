package cli

import (
	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/localstate"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type authCheckedMsg struct {
	hasPassword bool
	err         error
}

type loginResultMsg struct {
	err error
}

// loginView gates the editor behind the shared password. When no password
// is stored yet the form sets the first one.
type loginView struct {
	state    *SharedState
	next     func() []View
	form     *huh.Form
	password string
	setup    bool
	checking bool
	busy     bool
	err      error
}

func newLoginView(state *SharedState, next func() []View) *loginView {
	return &loginView{state: state, next: next, checking: true}
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "unlock")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		has, err := app.Auth.HasPassword(ctx)
		return authCheckedMsg{hasPassword: has, err: err}
	}
}

func (v *loginView) newForm() tea.Cmd {
	v.password = ""
	title := "Password"
	if v.setup {
		title = "Choose a password"
	}
	v.form = newForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(&v.password).
			Validate(validateRequired("password")),
	))
	return v.form.Init()
}

func (v *loginView) submit() tea.Cmd {
	v.busy = true
	app := v.state.App
	password, setup := v.password, v.setup
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		var err error
		if setup {
			err = app.Auth.SetPassword(ctx, "", password)
		} else {
			err = app.Auth.Login(ctx, password)
		}
		if err == nil {
			_, err = app.State.Update(func(s *localstate.State) { s.Authenticated = true })
		}
		return loginResultMsg{err: err}
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authCheckedMsg:
		v.checking = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.setup = !msg.hasPassword
		return v, v.newForm()

	case loginResultMsg:
		v.busy = false
		if msg.err == nil {
			return v, replaceStack(v.next()...)
		}
		v.err = msg.err
		return v, v.newForm()
	}

	if v.form == nil || v.busy {
		return v, nil
	}
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	switch v.form.State {
	case huh.StateCompleted:
		v.err = nil
		return v, v.submit()
	case huh.StateAborted:
		return v, tea.Quit
	}
	return v, cmd
}

func (v *loginView) View() string {
	if v.checking {
		return "\n  " + formatter.Dim("Checking access...")
	}
	out := "\n  " + formatter.Header("ganttplan") + "\n"
	if v.setup {
		out += "  " + formatter.Dim("No password is set yet. The one you choose unlocks every session.") + "\n"
	}
	if v.err != nil {
		msg := v.err.Error()
		if isAuthError(v.err) {
			msg = "Wrong password, try again."
		}
		out += "  " + formatter.StyleRed.Render(msg) + "\n"
	}
	if v.busy {
		return out + "\n  " + formatter.Dim("Checking password...")
	}
	if v.form != nil {
		out += "\n" + v.form.View()
	}
	return out
}
