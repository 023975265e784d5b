package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/xform/internal/model"
)

func TestReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	path := m.Path(filepath.Join(t.TempDir(), "report.json"))

	results := []m.Result{
		{
			Name:    "build",
			Outcome: m.OutcomeDone,
			Files: []m.FileReport{
				{Path: "/p/dist/a.js", Type: m.SourceDist, Steps: 2, Saved: true},
			},
			Sources: []*m.Source{m.NewMemorySource("a.js", m.SourceDist, "secret")},
		},
		{Name: "docs", Outcome: m.OutcomeWarning, Message: "no files matched"},
	}

	require.NoError(t, store.SaveResults(path, results))

	raw, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"outcome": "warning"`)

	loaded, err := store.LoadResults(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "build", loaded[0].Name)
	assert.Equal(t, results[0].Files, loaded[0].Files)
	assert.Nil(t, loaded[0].Sources)
	assert.Equal(t, "no files matched", loaded[1].Message)
}

func TestReportStore_Empty(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	path := m.Path(filepath.Join(t.TempDir(), "report.json"))

	require.NoError(t, store.SaveResults(path, nil))

	loaded, err := store.LoadResults(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestReportStore_Errors(t *testing.T) {
	root := t.TempDir()
	store := NewReportStore(NewLocalSourceFSAdapter())

	_, err := store.LoadResults(m.Path(filepath.Join(root, "missing.json")))
	assert.Error(t, err)

	bad := filepath.Join(root, "bad.json")
	writeTestFile(t, bad, "{")

	_, err = store.LoadResults(m.Path(bad))
	assert.Error(t, err)

	err = store.SaveResults(m.Path(filepath.Join(root, "no", "such", "dir", "r.json")), nil)
	assert.Error(t, err)
}
