package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/spf13/cobra"
)

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage contracts",
	}
	cmd.AddCommand(
		newContractAddCmd(app),
		newContractListCmd(app),
		newContractRenameCmd(app),
		newContractRemoveCmd(app),
	)
	return cmd
}

func newContractAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a contract",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			c, err := app.Contracts.Create(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contract %s %s\n", formatter.Bold(c.Name), formatter.Dim(c.ID))
			return nil
		},
	}
}

func newContractListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contracts and their years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			contracts, err := app.Contracts.List(ctx)
			if err != nil {
				return err
			}
			if len(contracts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contracts found.")
				return nil
			}
			years := make(map[string][]*domain.Year, len(contracts))
			for _, c := range contracts {
				if years[c.ID], err = app.Years.ListByContract(ctx, c.ID); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContractList(contracts, years))
			return nil
		},
	}
}

func newContractRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CONTRACT NEW-NAME",
		Short: "Rename a contract",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			c, err := resolveContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if err := app.Contracts.Rename(ctx, c.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", c.Name, formatter.Bold(name))
			return nil
		},
	}
}

func newContractRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm CONTRACT",
		Aliases: []string{"remove"},
		Short:   "Delete a contract with all its years and projects",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			c, err := resolveContract(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Delete contract %q with all its years and projects?", c.Name)); err != nil {
				return err
			}
			if err := app.Contracts.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contract %s\n", c.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
