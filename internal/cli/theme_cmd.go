package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/localstate"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.State.Load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.Theme)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.State.Load()
			if err != nil {
				return err
			}
			for _, t := range domain.Themes {
				marker := "  "
				if t == st.Theme {
					marker = formatter.StyleGreen.Render("* ")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, t)
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set THEME",
		Short: "Persist the theme used by the TUI and command output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := domain.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if _, err := app.State.Update(func(s *localstate.State) { s.Theme = key }); err != nil {
				return err
			}
			formatter.ApplyTheme(key)
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", key)
			return nil
		},
	}

	cmd.AddCommand(list, set)
	return noAuth(cmd)
}
