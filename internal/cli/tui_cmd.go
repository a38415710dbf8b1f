package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/localstate"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type tuiOptions struct {
	contract string
	year     int
}

func newTUICmd(app *App) *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive chart editor",
		Long: `Open the full-screen editor. Drag bar edges with the mouse to move
or resize projects and stages, drag project labels to reorder them, or use
the keyboard: < > move, [ ] resize, K J reorder.

With --contract (and --year) the editor opens directly on that chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, opts)
		},
	}
	cmd.Flags().StringVar(&opts.contract, "contract", "", "Open this contract")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Open this year of the contract")
	return noAuth(cmd)
}

func runTUI(app *App, opts tuiOptions) error {
	state := &SharedState{App: app}

	stack, err := initialStack(state, opts)
	if err != nil {
		return err
	}

	st, err := app.State.Load()
	if err != nil {
		app.logger().Warn("local state unreadable", "error", err)
		st = localstate.State{}
	}
	if !st.Authenticated {
		stack = []View{newLoginView(state, func() []View { return stack })}
	}

	p := tea.NewProgram(newAppModel(state, stack), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// initialStack opens the pickers, and the chart when the options name a
// year. The stack always starts at the contract picker so esc walks back.
func initialStack(state *SharedState, opts tuiOptions) ([]View, error) {
	stack := []View{newContractPickerView(state)}
	if opts.contract == "" {
		return stack, nil
	}

	ctx, cancel := state.App.ctx()
	defer cancel()

	c, err := resolveContract(ctx, state.App, opts.contract)
	if err != nil {
		return nil, err
	}
	state.SetContract(c)
	stack = append(stack, newYearPickerView(state))
	if opts.year == 0 {
		return stack, nil
	}

	scope := scopeFlags{contract: c.ID, year: opts.year}
	_, y, err := scope.resolve(ctx, state.App)
	if err != nil {
		return nil, err
	}
	state.Year = y
	return append(stack, newGanttView(state)), nil
}
