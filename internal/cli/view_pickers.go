package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type contractsLoadedMsg struct {
	contracts []*domain.Contract
	years     map[string][]*domain.Year
	err       error
}

// contractPickerView lists contracts; enter opens the contract's years.
type contractPickerView struct {
	state     *SharedState
	contracts []*domain.Contract
	years     map[string][]*domain.Year
	cursor    int
	loading   bool
	err       error
}

func newContractPickerView(state *SharedState) *contractPickerView {
	return &contractPickerView{state: state, loading: true}
}

func (v *contractPickerView) ID() ViewID    { return ViewContractPicker }
func (v *contractPickerView) Title() string { return "" }

func (v *contractPickerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *contractPickerView) Init() tea.Cmd {
	return v.load()
}

func (v *contractPickerView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		contracts, err := app.Contracts.List(ctx)
		if err != nil {
			return contractsLoadedMsg{err: err}
		}
		years := make(map[string][]*domain.Year, len(contracts))
		for _, c := range contracts {
			ys, err := app.Years.ListByContract(ctx, c.ID)
			if err != nil {
				return contractsLoadedMsg{err: err}
			}
			years[c.ID] = ys
		}
		return contractsLoadedMsg{contracts: contracts, years: years}
	}
}

func (v *contractPickerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contractsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.contracts = msg.contracts
			v.years = msg.years
			v.cursor = clampCursor(v.cursor, len(v.contracts))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.cursor = clampCursor(v.cursor-1, len(v.contracts))
		case "down", "j":
			v.cursor = clampCursor(v.cursor+1, len(v.contracts))
		case "enter":
			if c := v.selected(); c != nil {
				v.state.SetContract(c)
				return v, pushView(newYearPickerView(v.state))
			}
		case "n":
			return v, v.createForm()
		case "e":
			if c := v.selected(); c != nil {
				return v, v.renameForm(c)
			}
		case "d":
			if c := v.selected(); c != nil {
				return v, v.deleteForm(c)
			}
		}
	}
	return v, nil
}

func (v *contractPickerView) selected() *domain.Contract {
	if v.cursor < 0 || v.cursor >= len(v.contracts) {
		return nil
	}
	return v.contracts[v.cursor]
}

func (v *contractPickerView) createForm() tea.Cmd {
	var name string
	app := v.state.App
	return startWizardCmd(v.state, "New contract", nameForm("Contract name", &name), func() tea.Cmd {
		return storeCmd(app, func(ctx context.Context) (string, error) {
			c, err := app.Contracts.Create(ctx, name)
			if err != nil {
				return "", err
			}
			return "Created contract " + c.Name, nil
		})
	})
}

func (v *contractPickerView) renameForm(c *domain.Contract) tea.Cmd {
	name := c.Name
	app := v.state.App
	return startWizardCmd(v.state, "Rename contract", nameForm("Contract name", &name), func() tea.Cmd {
		return storeCmd(app, func(ctx context.Context) (string, error) {
			return "Renamed to " + strings.TrimSpace(name), app.Contracts.Rename(ctx, c.ID, name)
		})
	})
}

func (v *contractPickerView) deleteForm(c *domain.Contract) tea.Cmd {
	ok := false
	app := v.state.App
	q := fmt.Sprintf("Delete %q with all its years and projects?", c.Name)
	return startWizardCmd(v.state, "Delete contract", confirmForm(q, &ok), func() tea.Cmd {
		if !ok {
			return nil
		}
		return storeCmd(app, func(ctx context.Context) (string, error) {
			return "Deleted " + c.Name, app.Contracts.Delete(ctx, c.ID)
		})
	})
}

func (v *contractPickerView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading contracts...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Contracts") + "\n\n")
	if len(v.contracts) == 0 {
		b.WriteString("  " + formatter.Dim("No contracts yet. Press n to create one.") + "\n")
		return b.String()
	}
	for i, c := range v.contracts {
		var vals []string
		for _, y := range v.years[c.ID] {
			vals = append(vals, y.String())
		}
		years := formatter.Dim("no years")
		if len(vals) > 0 {
			years = formatter.Dim(strings.Join(vals, ", "))
		}
		b.WriteString(pickerLine(i == v.cursor, formatter.PadRight(c.Name, 32)+" "+years))
	}
	return b.String()
}

type yearsLoadedMsg struct {
	years []*domain.Year
	err   error
}

// yearPickerView lists the years of the selected contract.
type yearPickerView struct {
	state   *SharedState
	years   []*domain.Year
	cursor  int
	loading bool
	err     error
}

func newYearPickerView(state *SharedState) *yearPickerView {
	return &yearPickerView{state: state, loading: true}
}

func (v *yearPickerView) ID() ViewID { return ViewYearPicker }
func (v *yearPickerView) Title() string {
	if v.state.Contract != nil {
		return v.state.Contract.Name
	}
	return "Years"
}

func (v *yearPickerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open chart")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new year")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

func (v *yearPickerView) Init() tea.Cmd {
	return v.load()
}

func (v *yearPickerView) load() tea.Cmd {
	app := v.state.App
	c := v.state.Contract
	return func() tea.Msg {
		if c == nil {
			return yearsLoadedMsg{}
		}
		ctx, cancel := app.ctx()
		defer cancel()
		years, err := app.Years.ListByContract(ctx, c.ID)
		return yearsLoadedMsg{years: years, err: err}
	}
}

func (v *yearPickerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case yearsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.years = msg.years
			v.cursor = clampCursor(v.cursor, len(v.years))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.cursor = clampCursor(v.cursor-1, len(v.years))
		case "down", "j":
			v.cursor = clampCursor(v.cursor+1, len(v.years))
		case "enter":
			if y := v.selected(); y != nil {
				v.state.Year = y
				return v, pushView(newGanttView(v.state))
			}
		case "n":
			return v, v.createForm()
		case "d":
			if y := v.selected(); y != nil {
				return v, v.deleteForm(y)
			}
		}
	}
	return v, nil
}

func (v *yearPickerView) selected() *domain.Year {
	if v.cursor < 0 || v.cursor >= len(v.years) {
		return nil
	}
	return v.years[v.cursor]
}

func (v *yearPickerView) createForm() tea.Cmd {
	value := strconv.Itoa(v.state.App.now().Year())
	app := v.state.App
	c := v.state.Contract
	return startWizardCmd(v.state, "New year", yearForm(&value), func() tea.Cmd {
		return storeCmd(app, func(ctx context.Context) (string, error) {
			n, _ := strconv.Atoi(strings.TrimSpace(value))
			y, err := app.Years.Create(ctx, c.ID, n)
			if err != nil {
				return "", err
			}
			return "Added year " + y.String(), nil
		})
	})
}

func (v *yearPickerView) deleteForm(y *domain.Year) tea.Cmd {
	ok := false
	app := v.state.App
	q := fmt.Sprintf("Delete %d with all its projects?", y.Value)
	return startWizardCmd(v.state, "Delete year", confirmForm(q, &ok), func() tea.Cmd {
		if !ok {
			return nil
		}
		return storeCmd(app, func(ctx context.Context) (string, error) {
			return "Deleted " + y.String(), app.Years.Delete(ctx, y.ID)
		})
	})
}

func (v *yearPickerView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading years...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Years") + "\n\n")
	if len(v.years) == 0 {
		b.WriteString("  " + formatter.Dim("No years yet. Press n to add one.") + "\n")
		return b.String()
	}
	for i, y := range v.years {
		b.WriteString(pickerLine(i == v.cursor, y.String()))
	}
	return b.String()
}

func pickerLine(selected bool, text string) string {
	if selected {
		return formatter.StyleGreen.Render("▸ ") + formatter.StyleBold.Render(text) + "\n"
	}
	return "  " + text + "\n"
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}
