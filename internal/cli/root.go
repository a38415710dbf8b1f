package cli

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/config"
	"github.com/alexanderramin/ganttplan/internal/localstate"
	"github.com/alexanderramin/ganttplan/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrNotAuthenticated is returned by commands that need a prior login.
var ErrNotAuthenticated = errors.New("not logged in; run 'ganttplan login'")

// DefaultTimeout bounds every call the CLI and TUI make into the store.
const DefaultTimeout = 10 * time.Second

// annotation key marking commands that run without a login.
const annotationNoAuth = "ganttplan/no-auth"

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Contracts   service.ContractService
	Years       service.YearService
	Projects    service.ProjectService
	Stages      service.StageService
	Comments    service.CommentService
	Auth        service.AuthService
	Maintenance service.MaintenanceService
	Import      service.ImportService

	State  localstate.File
	Logger *slog.Logger

	// Rand picks palette colours on reset; nil uses the global source.
	Rand *rand.Rand

	// Now, Timeout and Interactive default to time.Now, DefaultTimeout
	// and a terminal check on stdin.
	Now         func() time.Time
	Timeout     time.Duration
	Interactive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// ctx returns a context bounded by the store timeout.
func (a *App) ctx() (context.Context, context.CancelFunc) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (a *App) interactive() bool {
	if a.Interactive != nil {
		return a.Interactive()
	}
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "ganttplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ganttplan",
		Short:         "Yearly Gantt planner for construction contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.State.Load()
			if err != nil {
				app.logger().Warn("local state unreadable", "error", err)
			}
			formatter.ApplyTheme(st.Theme)
			if skipsAuth(cmd) || st.Authenticated {
				return nil
			}
			return ErrNotAuthenticated
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app, tuiOptions{})
		},
	}
	// Consumed before the tree runs; registered so they are accepted anywhere.
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newTUICmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newPasswdCmd(app),
		newThemeCmd(app),
		NewKeyCmd(),
		newContractCmd(app),
		newYearCmd(app),
		newProjectCmd(app),
		newStageCmd(app),
		newCommentCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newMaintenanceCmd(app),
	)
	return root
}

func noAuth(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNoAuth] = "true"
	return cmd
}

func skipsAuth(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		// The root launches the TUI, which shows its own login form.
		return true
	}
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for c := cmd; c.HasParent(); c = c.Parent() {
		if c.Annotations[annotationNoAuth] == "true" {
			return true
		}
	}
	return false
}
