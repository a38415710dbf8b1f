package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMaintenanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Bulk repair operations",
	}
	cmd.AddCommand(newResetCmd(app))
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Move projects back to January, 4 weeks, 0% with a fresh colour",
		Long: `Reset schedules of every project, or only those of one contract year when
--contract or --year is given. Progress goes back to 0 and each project gets a
random palette colour. All rows change in one transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()

			var yearID, what string
			if cmd.Flags().Changed("contract") || cmd.Flags().Changed("year") {
				c, y, err := scope.resolve(ctx, app)
				if err != nil {
					return err
				}
				yearID = y.ID
				what = fmt.Sprintf("every project of %s %d", c.Name, y.Value)
			} else {
				what = "every project of every contract"
			}
			if err := confirm(app, yes, "Reset "+what+"?"); err != nil {
				return err
			}
			n, err := app.Maintenance.ResetSchedules(ctx, yearID, app.Rand)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %d projects\n", n)
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
