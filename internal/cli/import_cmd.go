package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Append the projects of a JSON or YAML schedule file",
		Long: `Append the projects of a schedule file to a contract year. The contract
and year named in the file are created when missing. Durations are given in
weeks (duration_weeks) or, for older files, months (duration) plus week_offset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			res, err := app.Import.ImportFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects and %d stages\n", res.ProjectCount, res.StageCount)
			return nil
		},
	}
}
