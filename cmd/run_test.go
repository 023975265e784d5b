package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/xform/internal/domain"
	m "github.com/mouse-blink/xform/internal/model"
)

const runConfig = `parallel: false
report: from-config.json
transformers:
  - name: build
    include: [dist]
    exclude: [dist/vendor]
    plugins:
      - id: NoDebug
        callee: trace
      - id: Header
        author: Jane
  - name: docs
    include: [docs]
    plugins:
      - id: Header
        author: Jane
`

func pluginIDs(spec domain.TransformerSpec) []string {
	ids := make([]string, 0, len(spec.Plugins))
	for _, p := range spec.Plugins {
		ids = append(ids, p.ID)
	}

	return ids
}

func TestRunCmd_DefaultTransformerFromPlugins(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		if len(args.Transformers) != 1 {
			return false
		}

		spec := args.Transformers[0]

		return spec.Name == "default" &&
			assert.ObjectsAreEqual([]string{"src", "lib"}, spec.Include) &&
			assert.ObjectsAreEqual([]string{"NoDebug", "Header"}, pluginIDs(spec)) &&
			spec.Async &&
			args.Yes &&
			args.Parallel &&
			args.Report == "" &&
			args.Cwd != ""
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-p", "NoDebug", "-p", "Header", "--yes", "src", "lib"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRunCmd_DefaultTransformerIncludesWorkingDirectory(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return assert.ObjectsAreEqual([]string{"."}, args.Transformers[0].Include) &&
			!args.Transformers[0].Async &&
			!args.Parallel &&
			!args.Yes
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--plugin", "NoDebug", "--sync", "--sequential"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_RequiresPlugins(t *testing.T) {
	cmd, _, _ := newTestRoot(t)

	cmd.SetArgs([]string{"run", "src"})
	err := cmd.Execute()
	require.ErrorIs(t, err, errNoPlugins)
}

func TestRunCmd_ConfigTransformers(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)
	path := writeConfigFile(t, runConfig)

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Transformers) == 2 &&
			args.Transformers[0].Name == "build" &&
			args.Transformers[1].Name == "docs" &&
			assert.ObjectsAreEqual([]string{"dist"}, args.Transformers[0].Include) &&
			args.Transformers[0].Plugins[0].Options["callee"] == "trace" &&
			!args.Parallel &&
			args.Report == m.Path("from-config.json")
	})).Return(nil)

	cmd.SetArgs([]string{"--config", path, "run"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_FlagsOverrideConfig(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)
	path := writeConfigFile(t, runConfig)

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		if len(args.Transformers) != 1 {
			return false
		}

		spec := args.Transformers[0]

		return spec.Name == "build" &&
			assert.ObjectsAreEqual([]string{"NoDebug"}, pluginIDs(spec)) &&
			assert.ObjectsAreEqual([]string{"out"}, spec.Include) &&
			assert.ObjectsAreEqual([]string{"dist/vendor", "gen"}, spec.Exclude) &&
			spec.TSConfig == m.Path("tsconfig.build.json") &&
			spec.ParseImports &&
			!spec.Async &&
			args.Report == m.Path("run.json")
	})).Return(nil)

	cmd.SetArgs([]string{
		"--config", path, "run",
		"--sync", "--parse-imports",
		"--tsconfig", "tsconfig.build.json",
		"-x", "gen",
		"-p", "NoDebug",
		"--report", "run.json",
		"out",
	})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_UnknownPluginFilter(t *testing.T) {
	cmd, _, _ := newTestRoot(t)
	path := writeConfigFile(t, runConfig)

	cmd.SetArgs([]string{"--config", path, "run", "-p", "FillTemplates"})
	require.ErrorIs(t, cmd.Execute(), errNoPlugins)
}

func TestRunCmd_PropagatesAbort(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).Return(domain.ErrAborted)

	cmd.SetArgs([]string{"run", "-p", "NoDebug"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrAborted)
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"yes", "sync", "sequential", "parse-imports", "tsconfig", "report", "exclude", "plugin"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
