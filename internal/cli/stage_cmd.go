package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the stages nested under a project",
	}
	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageEditCmd(app),
		newStageDragCmd(app, "move", timeline.EdgeStart),
		newStageDragCmd(app, "resize", timeline.EdgeEnd),
		newStageRemoveCmd(app),
	)
	return cmd
}

func newStageAddCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var sched scheduleFlags

	cmd := &cobra.Command{
		Use:   "add PROJECT [NAME]",
		Short: "Append a stage to a project",
		Long:  "Append a stage to a project. Without a name it is called \"Etapa Nouă N\"; the schedule defaults to the project's start.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if name == "" {
				name = domain.DefaultStageName(len(p.Stages) + 1)
			}
			st := domain.Stage{
				Name: name,
				Schedule: domain.Schedule{
					StartMonth:      p.Schedule.StartMonth,
					StartWeekOffset: p.Schedule.StartWeekOffset,
					DurationWeeks:   domain.WeeksPerMonth,
				},
			}
			if err := sched.apply(cmd, &st.Schedule); err != nil {
				return err
			}
			saved, err := app.Stages.SaveAll(ctx, p.ID, append(p.Stages, st))
			if err != nil {
				return err
			}
			added := saved[len(saved)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added stage %s to %s (%s)\n",
				formatter.Bold(added.Name), p.Name, formatter.ScheduleText(added.Schedule))
			return nil
		},
	}
	scope.bind(cmd)
	sched.bind(cmd)
	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			if len(p.Stages) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no stages\n", p.Name)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStageList(p.Stages))
			return nil
		},
	}
	scope.bind(cmd)
	return cmd
}

func newStageEditCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var sched scheduleFlags
	var name string

	cmd := &cobra.Command{
		Use:   "edit PROJECT STAGE",
		Short: "Rename or reschedule a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			i, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}
			stages := append([]domain.Stage(nil), p.Stages...)
			if cmd.Flags().Changed("name") {
				stages[i].Name = name
			}
			if err := sched.apply(cmd, &stages[i].Schedule); err != nil {
				return err
			}
			saved, err := app.Stages.SaveAll(ctx, p.ID, stages)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated stage %s (%s)\n",
				formatter.Bold(saved[i].Name), formatter.ScheduleText(saved[i].Schedule))
			return nil
		},
	}
	scope.bind(cmd)
	sched.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "New stage name")
	return cmd
}

func newStageDragCmd(app *App, use string, edge timeline.Edge) *cobra.Command {
	var scope scopeFlags
	var weeks int

	cmd := &cobra.Command{
		Use:   use + " PROJECT STAGE --weeks N",
		Short: "Drag a stage's " + edge.String() + " edge by N weeks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			i, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}
			st := p.Stages[i]
			final, changed := dragBy(st.Schedule, edge, weeks)
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "No change: %s stays at %s\n", st.Name, formatter.ScheduleText(st.Schedule))
				return nil
			}
			stored, err := app.Stages.UpdateSchedule(ctx, st.ID, final)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s → %s\n",
				formatter.Bold(st.Name), formatter.ScheduleText(st.Schedule), formatter.ScheduleText(stored))
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Signed number of weeks")
	_ = cmd.MarkFlagRequired("weeks")
	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:     "rm PROJECT STAGE",
		Aliases: []string{"remove"},
		Short:   "Delete a stage",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			i, err := resolveStage(p, args[1])
			if err != nil {
				return err
			}
			if err := app.Stages.Delete(ctx, p.Stages[i].ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted stage %s\n", p.Stages[i].Name)
			return nil
		},
	}
	scope.bind(cmd)
	return cmd
}
