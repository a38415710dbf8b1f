package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newYearCmd(app *App) *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "year",
		Short: "Manage the years of a contract",
	}
	cmd.PersistentFlags().StringVar(&contract, "contract", "", "Contract name or ID (defaults to the only contract)")

	add := &cobra.Command{
		Use:   "add YEAR",
		Short: "Add a calendar year to the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			ctx, cancel := app.ctx()
			defer cancel()
			c, err := resolveContract(ctx, app, contract)
			if err != nil {
				return err
			}
			y, err := app.Years.Create(ctx, c.ID, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d to %s\n", y.Value, formatter.Bold(c.Name))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the years of the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			c, err := resolveContract(ctx, app, contract)
			if err != nil {
				return err
			}
			years, err := app.Years.ListByContract(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(years) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No years for %s.\n", c.Name)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatYearList(years))
			return nil
		},
	}

	var yes bool
	rm := &cobra.Command{
		Use:     "rm YEAR",
		Aliases: []string{"remove"},
		Short:   "Delete a year and its projects",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			ctx, cancel := app.ctx()
			defer cancel()
			c, err := resolveContract(ctx, app, contract)
			if err != nil {
				return err
			}
			y, err := app.Years.Find(ctx, c.ID, value)
			if err != nil {
				return fmt.Errorf("year %d of %s: %w", value, c.Name, err)
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete %d of %q with all its projects?", value, c.Name)); err != nil {
				return err
			}
			if err := app.Years.Delete(ctx, y.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d from %s\n", value, c.Name)
			return nil
		},
	}
	rm.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	cmd.AddCommand(add, list, rm)
	return cmd
}
