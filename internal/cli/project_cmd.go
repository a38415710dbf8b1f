package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the projects of a contract year",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectEditCmd(app),
		newProjectDragCmd(app, "move", timeline.EdgeStart),
		newProjectDragCmd(app, "resize", timeline.EdgeEnd),
		newProjectReorderCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

// projectFlags are the editable attributes besides the schedule.
type projectFlags struct {
	name         string
	color        string
	progress     int
	showProgress bool
	link         string
}

func (f *projectFlags) bind(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "New project name")
	}
	cmd.Flags().StringVar(&f.color, "color", "", "Bar colour as #RRGGBB")
	cmd.Flags().IntVar(&f.progress, "progress", 0, "Progress percentage, 0-100")
	cmd.Flags().BoolVar(&f.showProgress, "show-progress", false, "Print the percentage next to the bar")
	cmd.Flags().StringVar(&f.link, "link", "", "Google Drive folder link")
}

func (f *projectFlags) apply(cmd *cobra.Command, p *domain.Project) error {
	if cmd.Flags().Changed("name") {
		p.Name = f.name
	}
	if cmd.Flags().Changed("color") {
		c := strings.TrimSpace(f.color)
		if !strings.HasPrefix(c, "#") {
			c = "#" + c
		}
		if err := domain.ValidateColor(c); err != nil {
			return err
		}
		p.Color = strings.ToUpper(c)
	}
	if cmd.Flags().Changed("progress") {
		if f.progress < 0 || f.progress > 100 {
			return fmt.Errorf("%w: progress %d out of range 0-100", domain.ErrInvalid, f.progress)
		}
		p.Progress = f.progress
	}
	if cmd.Flags().Changed("show-progress") {
		p.ShowProgress = f.showProgress
	}
	if cmd.Flags().Changed("link") {
		p.DriveLink = strings.TrimSpace(f.link)
	}
	return nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var sched scheduleFlags
	var attrs projectFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a project at the end of the year",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			c, y, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			p := &domain.Project{
				ContractID: c.ID,
				YearID:     y.ID,
				Name:       strings.Join(args, " "),
				Schedule:   domain.Schedule{DurationWeeks: domain.WeeksPerMonth},
				Color:      domain.DefaultColor,
			}
			if err := sched.apply(cmd, &p.Schedule); err != nil {
				return err
			}
			if err := attrs.apply(cmd, p); err != nil {
				return err
			}
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) %s\n",
				formatter.Bold(p.Name), formatter.ScheduleText(p.Schedule), formatter.Dim(p.ID))
			return nil
		},
	}
	scope.bind(cmd)
	sched.bind(cmd)
	attrs.bind(cmd, false)
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var query, months string
	var chart bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects of a year in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			_, y, err := scope.resolve(ctx, app)
			if err != nil {
				return err
			}
			projects, err := app.Projects.ListByYear(ctx, y.ID)
			if err != nil {
				return err
			}

			filter := timeline.Filter{Query: query, Range: timeline.FullYear}
			if months != "" {
				if filter.Range, err = parseMonthRange(months); err != nil {
					return err
				}
			}
			var shown []domain.Project
			for _, i := range filter.Apply(projects) {
				shown = append(shown, projects[i])
			}

			out := cmd.OutOrStdout()
			if len(shown) == 0 {
				fmt.Fprintln(out, emptyMessage(len(projects), filter))
				return nil
			}
			if chart {
				fmt.Fprintln(out, formatter.MonthHeader(formatter.DefaultLayout))
				for _, p := range shown {
					fmt.Fprintln(out, formatter.GanttRow(formatter.DefaultLayout, projectBarRow(p, false, false)))
				}
				return nil
			}
			fmt.Fprint(out, formatter.FormatProjectList(shown))
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().StringVar(&query, "search", "", "Only projects whose name contains this text")
	cmd.Flags().StringVar(&months, "months", "", "Only projects overlapping a month range, e.g. 3-6 or Mar-Iun")
	cmd.Flags().BoolVar(&chart, "chart", false, "Draw bars instead of a table")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project with its stages and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			comments, err := app.Comments.List(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(*p, comments, app.now()))
			return nil
		},
	}
	scope.bind(cmd)
	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var sched scheduleFlags
	var attrs projectFlags

	cmd := &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Change a project's name, schedule, progress, colour or link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			if err := sched.apply(cmd, &p.Schedule); err != nil {
				return err
			}
			if err := attrs.apply(cmd, p); err != nil {
				return err
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", formatter.Bold(p.Name), formatter.ScheduleText(p.Schedule))
			return nil
		},
	}
	scope.bind(cmd)
	sched.bind(cmd)
	attrs.bind(cmd, true)
	return cmd
}

// newProjectDragCmd builds "move" (start edge) and "resize" (end edge).
func newProjectDragCmd(app *App, use string, edge timeline.Edge) *cobra.Command {
	var scope scopeFlags
	var weeks int

	short := "Shift a project's start by N weeks, keeping its duration"
	if edge == timeline.EdgeEnd {
		short = "Lengthen or shorten a project by N weeks, keeping its start"
	}
	cmd := &cobra.Command{
		Use:   use + " PROJECT --weeks N",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			final, changed := dragBy(p.Schedule, edge, weeks)
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "No change: %s stays at %s\n", p.Name, formatter.ScheduleText(p.Schedule))
				return nil
			}
			stored, err := app.Projects.UpdateSchedule(ctx, p.ID, final)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s → %s\n",
				formatter.Bold(p.Name), formatter.ScheduleText(p.Schedule), formatter.ScheduleText(stored))
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Signed number of weeks")
	_ = cmd.MarkFlagRequired("weeks")
	return cmd
}

func newProjectReorderCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var to int

	cmd := &cobra.Command{
		Use:   "reorder PROJECT --to POSITION",
		Short: "Move a project to a 1-based position in the year's order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			projects, err := app.Projects.ListByYear(ctx, p.YearID)
			if err != nil {
				return err
			}
			if to < 1 || to > len(projects) {
				return fmt.Errorf("%w: position %d out of range 1-%d", domain.ErrInvalid, to, len(projects))
			}
			ids := make([]string, len(projects))
			from := -1
			for i, q := range projects {
				ids[i] = q.ID
				if q.ID == p.ID {
					from = i
				}
			}
			if from == to-1 {
				fmt.Fprintf(cmd.OutOrStdout(), "No change: %s is already at position %d\n", p.Name, to)
				return nil
			}
			if err := app.Projects.Reorder(ctx, p.YearID, timeline.Move(ids, from, to-1)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", formatter.Bold(p.Name), to)
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().IntVar(&to, "to", 0, "Target position, 1 is the top row")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm PROJECT",
		Aliases: []string{"remove"},
		Short:   "Delete a project with its stages and comments",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete project %q?", p.Name)); err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", p.Name)
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

// parseMonthRange reads "3-6", "Mar-Iun" or a single month.
func parseMonthRange(s string) (timeline.MonthRange, error) {
	from, to, found := strings.Cut(s, "-")
	if !found {
		to = from
	}
	start, ok1 := domain.ParseMonth(from)
	end, ok2 := domain.ParseMonth(to)
	if !ok1 || !ok2 {
		return timeline.MonthRange{}, fmt.Errorf("%w: month range %q", domain.ErrInvalid, s)
	}
	if start > end {
		start, end = end, start
	}
	return timeline.MonthRange{Start: start, End: end}, nil
}

// emptyMessage distinguishes an empty year from one whose projects are all
// filtered out.
func emptyMessage(total int, f timeline.Filter) string {
	if total > 0 && f.Active() {
		return "No projects match your filters"
	}
	return "No projects available"
}

func projectBarRow(p domain.Project, selected, expanded bool) formatter.BarRow {
	return formatter.BarRow{
		Label:        p.Name,
		Schedule:     p.Schedule,
		Color:        p.Color,
		Progress:     p.Progress,
		ShowProgress: p.ShowProgress,
		Selected:     selected,
		Expanded:     expanded,
		HasStages:    len(p.Stages) > 0,
	}
}
