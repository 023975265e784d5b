package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/xform/internal/domain"
	m "github.com/mouse-blink/xform/internal/model"
)

var errNoReport = errors.New("no report file: pass one or set report in the config file")

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [report]",
		Short: "Show the summary of a previous run",
		Long:  "Show the summary stored in a JSON report written by run --report. Defaults to the report file of the config.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := cfg.Report
			if len(args) == 1 {
				report = args[0]
			}

			if report == "" {
				return errNoReport
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Report: m.Path(report)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
