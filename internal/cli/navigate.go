package cli

import (
	"context"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the whole stack with views, bottom to top.
type replaceViewMsg struct {
	views []View
}

// cmdOutputMsg carries text output from a command execution
// to be displayed transiently in the current view.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// refreshViewMsg asks every view on the stack to reload from the store.
type refreshViewMsg struct{}

// quitMsg signals the app to quit.
type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func replaceStack(views ...View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{views: views} }
}

func refreshViews() tea.Msg {
	return refreshViewMsg{}
}

// outputCmd returns a tea.Cmd that sends a cmdOutputMsg.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

// shellError renders an error for the output area.
func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}

// storeDoneMsg reports a write made from a view. The appModel shows the
// outcome and asks every view to reload.
type storeDoneMsg struct {
	output string
	err    error
}

// storeCmd runs fn under the store timeout and reports it as a storeDoneMsg.
func storeCmd(app *App, fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		out, err := fn(ctx)
		return storeDoneMsg{output: out, err: err}
	}
}
