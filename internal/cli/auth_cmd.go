package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/cli/formatter"
	"github.com/alexanderramin/ganttplan/internal/localstate"
	"github.com/alexanderramin/ganttplan/internal/service"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Unlock the editor with the shared password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				if err := promptSecret(app, "Password", &password); err != nil {
					return err
				}
			}
			ctx, cancel := app.ctx()
			defer cancel()
			if err := app.Auth.Login(ctx, password); err != nil {
				return err
			}
			if _, err := app.State.Update(func(s *localstate.State) { s.Authenticated = true }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Logged in."))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Shared password (prompted when omitted)")
	return noAuth(cmd)
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Lock the editor again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.State.Update(func(s *localstate.State) { s.Authenticated = false }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
	return noAuth(cmd)
}

func newPasswdCmd(app *App) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Set or change the shared password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx()
			defer cancel()

			has, err := app.Auth.HasPassword(ctx)
			if err != nil {
				return err
			}
			if has && current == "" {
				if err := promptSecret(app, "Current password", &current); err != nil {
					return err
				}
			}
			if next == "" {
				if err := promptSecret(app, "New password", &next); err != nil {
					return err
				}
			}
			if err := app.Auth.SetPassword(ctx, current, next); err != nil {
				return err
			}
			if _, err := app.State.Update(func(s *localstate.State) { s.Authenticated = true }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Password updated."))
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	return noAuth(cmd)
}

func isAuthError(err error) bool {
	return errors.Is(err, service.ErrWrongPassword) || errors.Is(err, service.ErrNoPassword)
}
