package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Read and write project comments",
	}
	cmd.AddCommand(newCommentAddCmd(app), newCommentListCmd(app), newCommentRemoveCmd(app))
	return cmd
}

// defaultAuthor is the login name, used when --author is not given.
func defaultAuthor() string {
	for _, k := range []string{"GANTTPLAN_AUTHOR", "USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func newCommentAddCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var author string

	cmd := &cobra.Command{
		Use:   "add PROJECT TEXT...",
		Short: "Comment on a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			p, err := resolveProject(ctx, app, &scope, args[0])
			if err != nil {
				return err
			}
			if author == "" {
				author = defaultAuthor()
			}
			c, err := app.Comments.Add(ctx, p.ID, author, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment added to %s %s\n", formatter.Bold(p.Name), formatter.Dim(c.ID))
			return nil
		},
	}
	scope.bind(cmd)
	cmd.Flags().StringVar(&author, "author", "", "Author name (defaults to $USER)")
	return cmd
}

func newCommentListCmd(app *App) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's comments, newest first",
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
			if len(comments) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No comments on %s\n", p.Name)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCommentList(comments, app.now()))
			return nil
		},
	}
	scope.bind(cmd)
	return cmd
}

func newCommentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm COMMENT-ID",
		Aliases: []string{"remove"},
		Short:   "Delete a comment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()
			if err := app.Comments.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Comment deleted")
			return nil
		},
	}
}
