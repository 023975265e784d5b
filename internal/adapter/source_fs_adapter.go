// Package adapter contains the infrastructure adapters of the transformer:
// file system access, glob expansion, tsconfig loading and report storage.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "github.com/mouse-blink/xform/internal/model"
)

const defaultFileMode = 0o644

// SourceFSAdapter abstracts the file system operations the domain layer
// relies on so the transformer can be tested without touching the disk.
type SourceFSAdapter interface {
	// Exists reports whether path exists.
	Exists(path m.Path) (bool, error)

	// IsDir reports whether path is an existing directory.
	IsDir(path m.Path) (bool, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the contents of path, keeping its permissions.
	WriteFile(path m.Path, content []byte) error

	// Glob expands doublestar patterns into a sorted, deduplicated list.
	Glob(patterns []string, opts GlobOptions) ([]m.Path, error)
}

// GlobOptions configures SourceFSAdapter.Glob.
type GlobOptions struct {
	// Ignore patterns are matched against every result.
	Ignore []string
	// Cwd anchors relative patterns. Defaults to the process directory.
	Cwd m.Path
	// Absolute returns absolute paths instead of Cwd-relative ones.
	Absolute bool
	// OnlyFiles drops directories from the result.
	OnlyFiles bool
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Exists reports whether path exists.
func (a *LocalSourceFSAdapter) Exists(path m.Path) (bool, error) {
	_, err := os.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// IsDir reports whether path is an existing directory.
func (a *LocalSourceFSAdapter) IsDir(path m.Path) (bool, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return info.IsDir(), nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - paths come from the user's own include patterns
	return os.ReadFile(string(path))
}

// WriteFile writes content to path with the permissions of the existing
// file, or 0644 for new files.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	perm := os.FileMode(defaultFileMode)
	if info, err := os.Stat(string(path)); err == nil {
		perm = info.Mode().Perm()
	}

	return os.WriteFile(string(path), content, perm)
}

// Glob expands patterns relative to opts.Cwd.
func (a *LocalSourceFSAdapter) Glob(patterns []string, opts GlobOptions) ([]m.Path, error) {
	cwd, err := resolveCwd(opts.Cwd)
	if err != nil {
		return nil, err
	}

	ignore := make([]string, 0, len(opts.Ignore))
	for _, pattern := range opts.Ignore {
		ignore = append(ignore, anchor(cwd, pattern))
	}

	var globOpts []doublestar.GlobOption
	if opts.OnlyFiles {
		globOpts = append(globOpts, doublestar.WithFilesOnly())
	}

	seen := make(map[string]struct{})

	var out []m.Path

	for _, pattern := range patterns {
		base, rest := doublestar.SplitPattern(anchor(cwd, pattern))

		matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), rest, globOpts...)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, match := range matches {
			abs := strings.TrimSuffix(base, "/") + "/" + match
			if match == "." {
				abs = base
			}

			if ignored(ignore, abs) {
				continue
			}

			if _, ok := seen[abs]; ok {
				continue
			}

			seen[abs] = struct{}{}
			out = append(out, a.result(cwd, abs, opts.Absolute))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

func (a *LocalSourceFSAdapter) result(cwd, abs string, absolute bool) m.Path {
	native := filepath.FromSlash(abs)
	if absolute {
		return m.Path(native)
	}

	rel, err := filepath.Rel(filepath.FromSlash(cwd), native)
	if err != nil {
		return m.Path(native)
	}

	return m.Path(rel)
}

func resolveCwd(cwd m.Path) (string, error) {
	dir := string(cwd)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}

		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(abs), nil
}

// anchor turns pattern into an absolute slash-separated pattern.
func anchor(cwd, pattern string) string {
	pattern = filepath.ToSlash(pattern)
	if !filepath.IsAbs(filepath.FromSlash(pattern)) && !strings.HasPrefix(pattern, "/") {
		pattern = cwd + "/" + pattern
	}

	return cleanPattern(pattern)
}

// cleanPattern resolves . and .. segments without touching meta characters.
func cleanPattern(pattern string) string {
	parts := strings.Split(pattern, "/")
	out := make([]string, 0, len(parts))

	for i, part := range parts {
		switch {
		case part == "." || (part == "" && i > 0):
		case part == "..":
			if len(out) > 1 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, part)
		}
	}

	cleaned := strings.Join(out, "/")
	if cleaned == "" {
		return "/"
	}

	return cleaned
}

func ignored(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}

	return false
}
