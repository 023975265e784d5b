package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	domainmocks "github.com/mouse-blink/xform/internal/domain/mocks"
)

// newTestRoot returns a root command with every subcommand and a mocked
// workflow installed for the duration of the test.
func newTestRoot(t *testing.T) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	stderr := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd(), newListCmd(), newPluginsCmd(), newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)

	return cmd, mockWorkflow, stderr
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "xform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
