// Package commands implements the tasklist command line.
package commands

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "A color-tagged task list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path (default: search /etc/tasklist, $HOME/.tasklist, .)")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newListCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newToggleCommand(opts),
		newRemoveCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}
