package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/xform/internal/domain"
	m "github.com/mouse-blink/xform/internal/model"
)

var runYesFlag bool
var runSyncFlag bool
var runSequentialFlag bool
var runParseImportsFlag bool
var runTSConfigFlag string
var runReportFlag string
var runExcludeFlags []string
var runPluginFlags []string

// runCmd represents the run command.
var runCmd = newRunCmd()

const runLongDescription = `Run every configured transformer over its files.

Paths given on the command line replace the include list of every
transformer. Without configured transformers, a default transformer is
built from the --plugin flags and applied to the paths (or the current
directory).

Each changed file is shown as a diff and must be confirmed unless --yes
is given. Rejecting a change aborts the whole run.`

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Transform source files",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := transformerSpecs(overrides{
				paths:        args,
				exclude:      runExcludeFlags,
				plugins:      runPluginFlags,
				tsconfig:     runTSConfigFlag,
				parseImports: runParseImportsFlag,
				sync:         runSyncFlag,
			}, true)
			if err != nil {
				return err
			}

			cwd, err := workingDir()
			if err != nil {
				return err
			}

			report := runReportFlag
			if report == "" {
				report = cfg.Report
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Transformers: specs,
				Yes:          runYesFlag || cfg.Yes,
				Parallel:     cfg.Parallel && !runSequentialFlag,
				Cwd:          cwd,
				Report:       m.Path(report),
			})
		},
	}
	cmd.Flags().BoolVarP(&runYesFlag, "yes", "y", false, "apply every change without asking")
	cmd.Flags().BoolVar(&runSyncFlag, "sync", false, "process files one at a time")
	cmd.Flags().BoolVar(&runSequentialFlag, "sequential", false, "run transformers one after another")
	cmd.Flags().BoolVar(&runParseImportsFlag, "parse-imports", false, "also transform files reachable through relative imports")
	cmd.Flags().StringVar(&runTSConfigFlag, "tsconfig", "", "tsconfig.json used by every transformer")
	cmd.Flags().StringVar(&runReportFlag, "report", "", "write a JSON report of the run to this file")
	cmd.Flags().StringArrayVarP(&runExcludeFlags, "exclude", "x", nil, "exclude files matching glob or directory (can be repeated)")
	cmd.Flags().StringArrayVarP(&runPluginFlags, "plugin", "p", nil, "plugin id to run (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
