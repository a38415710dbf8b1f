package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type commentsLoadedMsg struct {
	comments []*domain.Comment
	err      error
}

// commentsView shows the discussion thread of one project, newest first.
type commentsView struct {
	state    *SharedState
	project  domain.Project
	comments []*domain.Comment
	cursor   int
	loading  bool
	err      error
}

func newCommentsView(state *SharedState, p domain.Project) *commentsView {
	return &commentsView{state: state, project: p, loading: true}
}

func (v *commentsView) ID() ViewID    { return ViewComments }
func (v *commentsView) Title() string { return v.project.Name }

func (v *commentsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

func (v *commentsView) Init() tea.Cmd {
	return v.load()
}

func (v *commentsView) load() tea.Cmd {
	app := v.state.App
	id := v.project.ID
	return func() tea.Msg {
		ctx, cancel := app.ctx()
		defer cancel()
		comments, err := app.Comments.List(ctx, id)
		return commentsLoadedMsg{comments: comments, err: err}
	}
}

func (v *commentsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commentsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.comments = msg.comments
			v.cursor = clampCursor(v.cursor, len(v.comments))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.cursor = clampCursor(v.cursor-1, len(v.comments))
		case "down", "j":
			v.cursor = clampCursor(v.cursor+1, len(v.comments))
		case "a":
			return v, v.addForm()
		case "d":
			if v.cursor < len(v.comments) {
				return v, v.deleteForm(v.comments[v.cursor])
			}
		}
	}
	return v, nil
}

func (v *commentsView) addForm() tea.Cmd {
	author := defaultAuthor()
	var text string
	app := v.state.App
	id := v.project.ID
	return startWizardCmd(v.state, "New comment", commentForm(&author, &text), func() tea.Cmd {
		return storeCmd(app, func(ctx context.Context) (string, error) {
			if _, err := app.Comments.Add(ctx, id, author, text); err != nil {
				return "", err
			}
			return "Comment added", nil
		})
	})
}

func (v *commentsView) deleteForm(c *domain.Comment) tea.Cmd {
	ok := false
	app := v.state.App
	q := fmt.Sprintf("Delete the comment by %s?", c.AuthorName)
	return startWizardCmd(v.state, "Delete comment", confirmForm(q, &ok), func() tea.Cmd {
		if !ok {
			return nil
		}
		return storeCmd(app, func(ctx context.Context) (string, error) {
			return "Comment deleted", app.Comments.Delete(ctx, c.ID)
		})
	})
}

func (v *commentsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading comments...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Comments") + "  " + formatter.Dim(formatter.ScheduleText(v.project.Schedule)) + "\n\n")
	if len(v.comments) == 0 {
		b.WriteString("  " + formatter.Dim("No comments yet. Press a to add one.") + "\n")
		return b.String()
	}

	now := v.state.App.now()
	for i, c := range v.comments {
		head := c.AuthorName + " " + formatter.Dim("· "+formatter.RelativeTime(c.CreatedAt, now))
		b.WriteString(pickerLine(i == v.cursor, head))
		for _, line := range strings.Split(strings.TrimRight(c.Content, "\n"), "\n") {
			b.WriteString("    " + line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
