package cmd

import (
	"github.com/spf13/cobra"
)

// pluginsCmd represents the plugins command.
var pluginsCmd = newPluginsCmd()

func newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List the available plugin ids",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			ui.DisplayPlugins(workflow.Plugins())

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
