package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/xform/internal/model"
)

func TestLocalSourceFSAdapter_ExistsIsDir(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	file := filepath.Join(root, "a.js")
	writeTestFile(t, file, "x")

	ok, err := adapter.Exists(m.Path(file))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = adapter.Exists(m.Path(filepath.Join(root, "missing.js")))
	require.NoError(t, err)
	assert.False(t, ok)

	dir, err := adapter.IsDir(m.Path(root))
	require.NoError(t, err)
	assert.True(t, dir)

	dir, err = adapter.IsDir(m.Path(file))
	require.NoError(t, err)
	assert.False(t, dir)

	dir, err = adapter.IsDir(m.Path(filepath.Join(root, "missing")))
	require.NoError(t, err)
	assert.False(t, dir)
}

func TestLocalSourceFSAdapter_ReadWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.js")
	writeTestFile(t, path, "old")
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("new")))

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	fresh := filepath.Join(root, "fresh.js")
	require.NoError(t, adapter.WriteFile(m.Path(fresh), []byte("x")))

	info, err = os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestLocalSourceFSAdapter_Glob(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "src", "a.ts"), "")
	writeTestFile(t, filepath.Join(root, "src", "nested", "b.tsx"), "")
	writeTestFile(t, filepath.Join(root, "src", "readme.md"), "")
	writeTestFile(t, filepath.Join(root, "dist", "a.js"), "")
	writeTestFile(t, filepath.Join(root, "node_modules", "lib", "index.js"), "")

	t.Run("relative patterns with braces", func(t *testing.T) {
		got, err := adapter.Glob([]string{"src/**/*.{ts,tsx}"}, GlobOptions{Cwd: m.Path(root), OnlyFiles: true})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join("src", "a.ts")),
			m.Path(filepath.Join("src", "nested", "b.tsx")),
		}, got)
	})

	t.Run("absolute results are deduplicated and sorted", func(t *testing.T) {
		got, err := adapter.Glob([]string{"dist/*.js", "**/a.*", "./dist/a.js"}, GlobOptions{
			Cwd:       m.Path(root),
			Absolute:  true,
			OnlyFiles: true,
			Ignore:    []string{"**/node_modules/**"},
		})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(root, "dist", "a.js")),
			m.Path(filepath.Join(root, "src", "a.ts")),
		}, got)
	})

	t.Run("ignore drops matches", func(t *testing.T) {
		got, err := adapter.Glob([]string{"**/*.js"}, GlobOptions{
			Cwd:       m.Path(root),
			OnlyFiles: true,
			Ignore:    []string{"**/node_modules/**"},
		})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join("dist", "a.js"))}, got)
	})

	t.Run("absolute pattern and parent segments", func(t *testing.T) {
		got, err := adapter.Glob(
			[]string{filepath.ToSlash(filepath.Join(root, "src")) + "/*.ts", "../dist/*.js"},
			GlobOptions{Cwd: m.Path(filepath.Join(root, "src")), Absolute: true, OnlyFiles: true},
		)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(root, "dist", "a.js")),
			m.Path(filepath.Join(root, "src", "a.ts")),
		}, got)
	})

	t.Run("literal file", func(t *testing.T) {
		got, err := adapter.Glob([]string{"src/a.ts", "src/missing.ts"}, GlobOptions{Cwd: m.Path(root)})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join("src", "a.ts"))}, got)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := adapter.Glob([]string{"src/[a.ts"}, GlobOptions{Cwd: m.Path(root)})
		assert.Error(t, err)
	})
}

func TestCleanPattern(t *testing.T) {
	assert.Equal(t, "/a/c/**/*.js", cleanPattern("/a/b/../c/./**/*.js"))
	assert.Equal(t, "/", cleanPattern("/a/.."))
	assert.Equal(t, "/x", cleanPattern("//x/"))
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}
