package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/xform/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()
var listExcludeFlags []string
var listTSConfigFlag string
var listParseImportsFlag bool

const listLongDescription = `List the files every configured transformer would process,
with their type (src or dist) and the TypeScript source of dist files.
Nothing is read or written beyond discovery.`

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List the files that would be transformed",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := transformerSpecs(overrides{
				paths:        args,
				exclude:      listExcludeFlags,
				tsconfig:     listTSConfigFlag,
				parseImports: listParseImportsFlag,
			}, false)
			if err != nil {
				return err
			}

			cwd, err := workingDir()
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{Transformers: specs, Cwd: cwd})
		},
	}
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching glob or directory (can be repeated)")
	cmd.Flags().StringVar(&listTSConfigFlag, "tsconfig", "", "tsconfig.json used by every transformer")
	cmd.Flags().BoolVar(&listParseImportsFlag, "parse-imports", false, "include files reachable through relative imports")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
