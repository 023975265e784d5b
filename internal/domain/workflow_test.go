package domain

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/xform/internal/adapter"
	adaptermocks "github.com/mouse-blink/xform/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/xform/internal/controller/mocks"
	"github.com/mouse-blink/xform/internal/domain/plugins"
	m "github.com/mouse-blink/xform/internal/model"
)

func newTestWorkflow(ui *controllermocks.MockUI, reports adapter.ReportStore) Workflow {
	return NewWorkflow(adapter.NewLocalSourceFSAdapter(), nil, reports, ui, plugins.DefaultRegistry(), discardLogger())
}

func TestWorkflow_Run(t *testing.T) {
	root := t.TempDir()
	dist := writeFile(t, root, "dist/a.js", "debug(1);\nrun();\n")
	src := writeFile(t, root, "src/a.ts", "export const a = 1;\n")

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplaySummary(mock.MatchedBy(func(results []m.Result) bool {
		return len(results) == 2 &&
			results[0].Name == "dist" && results[0].Outcome == m.OutcomeDone &&
			results[1].Name == "empty" && results[1].Outcome == m.OutcomeWarning
	})).Return()

	ui.EXPECT().DisplayWarning("empty: " + noFilesMessage).Return().Once()

	reports := adaptermocks.NewMockReportStore(t)
	reports.EXPECT().SaveResults(m.Path("report.json"), mock.Anything).Return(nil)

	wf := newTestWorkflow(ui, reports)

	err := wf.Run(context.Background(), RunArgs{
		Transformers: []TransformerSpec{
			{
				Name:    "dist",
				Include: []string{"dist", "src"},
				Async:   true,
				Plugins: []PluginSpec{
					{ID: plugins.NoDebugID},
					{ID: plugins.HeaderID, Options: map[string]any{"author": "Jane"}},
				},
			},
			{Name: "empty", Include: []string{"missing/**/*.js"}},
		},
		Yes:    true,
		Cwd:    m.Path(root),
		Report: "report.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "/**\n * @author Jane\n */\n//debug(1);\nrun();\n", readFile(t, dist))
	assert.Equal(t, "/**\n * @author Jane\n */\nexport const a = 1;\n", readFile(t, src))
}

func TestWorkflow_Run_Aborted(t *testing.T) {
	root := t.TempDir()
	dist := writeFile(t, root, "a.js", "debug();\n")

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplayDiff(mock.Anything, mock.Anything).Return()
	ui.EXPECT().Confirm(mock.Anything, mock.Anything).Return(false, nil)
	ui.EXPECT().DisplaySummary(mock.MatchedBy(func(results []m.Result) bool {
		return len(results) == 1 && results[0].Outcome == m.OutcomeAborted
	})).Return()

	wf := newTestWorkflow(ui, nil)

	err := wf.Run(context.Background(), RunArgs{
		Transformers: []TransformerSpec{{Name: "a", Include: []string{"a.js"}, Plugins: []PluginSpec{{ID: plugins.NoDebugID}}}},
		Cwd:          m.Path(root),
	})
	require.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, "debug();\n", readFile(t, dist))
}

func TestWorkflow_Run_Errors(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	wf := newTestWorkflow(ui, nil)

	err := wf.Run(context.Background(), RunArgs{})
	require.ErrorIs(t, err, ErrNoTransformers)

	err = wf.Run(context.Background(), RunArgs{
		Transformers: []TransformerSpec{{Name: "x", Plugins: []PluginSpec{{ID: "Nope"}}}},
		Yes:          true,
	})
	require.ErrorIs(t, err, plugins.ErrUnknownPlugin)

	err = wf.Run(context.Background(), RunArgs{
		Transformers: []TransformerSpec{{Name: "x", Plugins: []PluginSpec{{ID: plugins.NoDebugID, Options: map[string]any{"bogus": 1}}}}},
		Yes:          true,
	})
	require.ErrorContains(t, err, "bogus")
}

func TestWorkflow_Run_ErrorStillShowsSummary(t *testing.T) {
	root := t.TempDir()

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplaySummary(mock.MatchedBy(func(results []m.Result) bool {
		return len(results) == 0
	})).Return()

	wf := newTestWorkflow(ui, nil)

	err := wf.Run(context.Background(), RunArgs{
		Transformers: []TransformerSpec{{Name: "x", Include: []string{"missing.js"}, CheckInclude: true}},
		Yes:          true,
		Cwd:          m.Path(root),
	})
	require.ErrorIs(t, err, ErrIncludeNotFound)
}

func TestWorkflow_List(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "")
	writeFile(t, root, "dist/a.js", "")

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplaySources(mock.MatchedBy(func(sources []*m.Source) bool {
		if len(sources) != 2 {
			return false
		}

		return strings.HasSuffix(string(sources[0].Path), filepath.Join("dist", "a.js")) &&
			sources[0].TSSrc == "" &&
			strings.HasSuffix(string(sources[1].Path), filepath.Join("src", "a.ts"))
	})).Return(nil)

	wf := newTestWorkflow(ui, nil)

	err := wf.List(context.Background(), ListArgs{
		Transformers: []TransformerSpec{
			{Name: "one", Include: []string{"src", "dist"}},
			{Name: "two", Include: []string{"dist"}},
		},
		Cwd: m.Path(root),
	})
	require.NoError(t, err)

	require.ErrorIs(t, wf.List(context.Background(), ListArgs{}), ErrNoTransformers)
}

func TestWorkflow_View(t *testing.T) {
	root := t.TempDir()
	report := m.Path(filepath.Join(root, "report.json"))
	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore(fs)

	saved := []m.Result{
		{Name: "build", Outcome: m.OutcomeDone, Files: []m.FileReport{{Path: "/p/a.js", Type: m.SourceDist, Steps: 2, Saved: true}}},
		{Name: "empty", Outcome: m.OutcomeWarning, Message: noFilesMessage},
	}
	require.NoError(t, store.SaveResults(report, saved))

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplaySummary(saved).Return().Once()

	wf := NewWorkflow(fs, nil, store, ui, nil, discardLogger())
	require.NoError(t, wf.View(context.Background(), ViewArgs{Report: report}))

	err := wf.View(context.Background(), ViewArgs{Report: m.Path(filepath.Join(root, "missing.json"))})
	require.ErrorContains(t, err, "read report")

	require.Error(t, newTestWorkflow(ui, nil).View(context.Background(), ViewArgs{Report: report}))
}

func TestWorkflow_Plugins(t *testing.T) {
	wf := newTestWorkflow(controllermocks.NewMockUI(t), nil)

	assert.Equal(t, plugins.DefaultRegistry().IDs(), wf.Plugins())
}
