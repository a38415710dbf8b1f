package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

var (
	errNotInteractive = errors.New("value required; pass it as a flag when not running in a terminal")
	errCancelled      = errors.New("cancelled")
)

// promptSecret asks for a hidden value on an interactive terminal.
func promptSecret(app *App, title string, value *string) error {
	if !app.interactive() {
		return fmt.Errorf("%s: %w", title, errNotInteractive)
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(value),
	)).WithTheme(ganttHuhTheme()).WithShowHelp(false).Run()
}

// confirm asks a yes/no question unless yes is already set. Without a
// terminal the question cannot be asked and the command refuses to run.
func confirm(app *App, yes bool, question string) error {
	if yes {
		return nil
	}
	if !app.interactive() {
		return fmt.Errorf("%s pass --yes to confirm", question)
	}
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(&ok),
	)).WithTheme(ganttHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}
