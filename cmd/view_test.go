package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/xform/internal/domain"
	m "github.com/mouse-blink/xform/internal/model"
)

func TestViewCmd_UsesArgument(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)

	mockWorkflow.EXPECT().View(mock.Anything, domain.ViewArgs{Report: m.Path("out/run.json")}).Return(nil)

	cmd.SetArgs([]string{"view", "out/run.json"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_FallsBackToConfigReport(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t)
	path := writeConfigFile(t, "report: from-config.json\n")

	mockWorkflow.EXPECT().View(mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Report == m.Path("from-config.json")
	})).Return(nil)

	cmd.SetArgs([]string{"--config", path, "view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RequiresReport(t *testing.T) {
	cmd, _, _ := newTestRoot(t)

	cmd.SetArgs([]string{"view"})
	require.ErrorIs(t, cmd.Execute(), errNoReport)
}

func TestNewViewCmd(t *testing.T) {
	cmd := newViewCmd()

	assert.Equal(t, "view [report]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}
