package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ganttplan/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var output string
	var stages bool

	cmd := &cobra.Command{
		Use:       "export png|text|json",
		Short:     "Export a contract year's chart",
		Long:      "Export a contract year's chart. The default file is gantt-chart-YYYY-MM-DD with the format's extension; -o - writes to stdout.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(export.FormatPNG), string(export.FormatText), string(export.FormatJSON)},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := app.ctx()
			defer cancel()
			chart, err := loadChart(ctx, app, &scope)
			if err != nil {
				return err
			}

			if output == "-" {
				return writeChart(cmd.OutOrStdout(), format, chart, stages)
			}
			if output == "" {
				output = export.DefaultFileName(format, app.now())
			}
			if err := writeChartFile(output, format, chart, stages); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(chart.Projects), output)
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&stages, "stages", true, "Include stage rows")
	return cmd
}

func loadChart(ctx context.Context, app *App, scope *scopeFlags) (export.Chart, error) {
	c, y, err := scope.resolve(ctx, app)
	if err != nil {
		return export.Chart{}, err
	}
	projects, err := app.Projects.ListByYear(ctx, y.ID)
	if err != nil {
		return export.Chart{}, err
	}
	return export.Chart{Contract: c.Name, Year: y.Value, Projects: projects}, nil
}

func writeChart(w io.Writer, format export.Format, chart export.Chart, stages bool) error {
	switch format {
	case export.FormatPNG:
		return export.WritePNG(w, chart, export.PNGOptions{Stages: stages})
	case export.FormatText:
		return export.WriteText(w, chart, stages)
	default:
		return export.WriteJSON(w, chart)
	}
}

func writeChartFile(path string, format export.Format, chart export.Chart, stages bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return writeChart(f, format, chart, stages)
}
