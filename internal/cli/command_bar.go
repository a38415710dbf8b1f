package cli

import (
	"sort"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// commandBar is the persistent text input at the bottom of the TUI. It runs
// any CLI command line against the same App, scoped to the open year.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{input: ti, state: state}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(c.promptPrefixPlain()) - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.promptPrefix() + formatter.Dim("press : to type a command")
	}
	return c.promptPrefix() + c.input.View()
}

func (c *commandBar) promptPrefix() string {
	return formatter.StylePurple.Render("ganttplan") + " " + formatter.Dim("❯") + " "
}

func (c *commandBar) promptPrefixPlain() string {
	return "ganttplan > "
}

// executeCommand runs one command line. Built-ins quit the TUI; anything
// else goes through the cobra tree and the views reload afterwards.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	switch strings.ToLower(parts[0]) {
	case "exit", "quit":
		return tea.Quit
	case "clear":
		return nil
	case "tui":
		return outputCmd(formatter.StyleYellow.Render("Already in the TUI."))
	}

	app := c.state.App
	args := scopeArgs(c.state, parts)
	return tea.Batch(
		func() tea.Msg { return cmdOutputMsg{output: captureCobraOutput(app, args)} },
		refreshViews,
	)
}

// scopeArgs adds --contract/--year for the open year to commands that take
// them, unless the user already gave them.
func scopeArgs(state *SharedState, parts []string) []string {
	if state.Contract == nil || state.Year == nil || len(parts) < 2 {
		return parts
	}
	scoped := map[string]bool{"project": true, "stage": true, "comment": true, "export": true}
	if !scoped[parts[0]] {
		return parts
	}
	hasContract, hasYear := false, false
	for _, p := range parts {
		hasContract = hasContract || p == "--contract" || strings.HasPrefix(p, "--contract=")
		hasYear = hasYear || p == "--year" || strings.HasPrefix(p, "--year=")
	}
	out := append([]string(nil), parts...)
	if !hasContract {
		out = append(out, "--contract", state.Contract.ID)
	}
	if !hasYear {
		out = append(out, "--year", state.Year.String())
	}
	return out
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	parts := strings.Fields(text)
	if len(parts) == 0 {
		c.input.SetSuggestions(nil)
		return
	}
	trailingSpace := strings.HasSuffix(text, " ")

	root := NewRootCmd(c.state.App)
	if len(parts) == 1 && !trailingSpace {
		c.input.SetSuggestions(filterSuggestions(commandNames(root), parts[0]))
		return
	}

	if len(parts) == 1 || (len(parts) == 2 && !trailingSpace) {
		sub, _, err := root.Find(parts[:1])
		if err != nil || sub == root {
			c.input.SetSuggestions(nil)
			return
		}
		var names []string
		for _, s := range sub.Commands() {
			if !s.Hidden {
				names = append(names, parts[0]+" "+s.Name())
			}
		}
		sort.Strings(names)
		c.input.SetSuggestions(filterSuggestions(names, strings.Join(parts, " ")))
		return
	}
	c.input.SetSuggestions(nil)
}

func filterSuggestions(options []string, prefix string) []string {
	var out []string
	for _, o := range options {
		if strings.HasPrefix(o, prefix) {
			out = append(out, o)
		}
	}
	return out
}
