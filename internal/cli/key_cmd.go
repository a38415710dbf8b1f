package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/config"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// NewKeyCmd manages the store key kept in the OS keyring. It needs no
// store, so main can run it before the configuration is complete.
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the store key in the OS keyring",
	}

	set := &cobra.Command{
		Use:   "set [KEY]",
		Short: "Save the store key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				err := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Store key").EchoMode(huh.EchoModePassword).Value(&key),
				)).WithTheme(ganttHuhTheme()).WithShowHelp(false).Run()
				if err != nil {
					return err
				}
			}
			if err := config.SetStoreKey(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Store key saved to the keyring.")
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the store key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.DeleteStoreKey()
			if errors.Is(err, config.ErrKeyNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No store key in the keyring.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Store key removed.")
			return nil
		},
	}

	cmd.AddCommand(set, clearCmd)
	return noAuth(cmd)
}
