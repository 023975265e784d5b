package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mouse-blink/xform/internal/adapter"
	m "github.com/mouse-blink/xform/internal/model"
)

// scriptFiles is appended to included directories.
const scriptFiles = "/**/*.{js,jsx,ts,tsx}"

// implicitExclude is always added to the exclude list.
var implicitExclude = []string{"**/node_modules/**", "**/.DS_Store"}

// Discover resolves the include and exclude lists and returns one source per
// matched script file. Dist files get their TypeScript origin resolved.
func (t *Transformer) Discover(ctx context.Context) ([]*m.Source, error) {
	include, exclude, err := t.patterns(ctx)
	if err != nil {
		return nil, err
	}

	if len(include) == 0 {
		return nil, nil
	}

	paths, err := t.deps.FS.Glob(include, adapter.GlobOptions{
		Ignore:    exclude,
		Cwd:       t.opts.Cwd,
		Absolute:  true,
		OnlyFiles: true,
	})
	if err != nil {
		return nil, fmt.Errorf("transformer %s: %w", t.opts.Name, err)
	}

	sources := make([]*m.Source, 0, len(paths))

	for _, path := range paths {
		typ, ok := inferType(path)
		if !ok {
			t.logger.Debug("skipping file", "file", path)
			continue
		}

		src := m.NewSource(path, typ)
		if typ == m.SourceDist {
			src.TSSrc = t.resolveTSSrc(path)
		}

		sources = append(sources, src)
	}

	return sources, nil
}

func (t *Transformer) patterns(ctx context.Context) ([]string, []string, error) {
	include, err := t.resolveIncludes(ctx, t.opts.Include, t.opts.CheckInclude)
	if err != nil {
		return nil, nil, err
	}

	exclude, err := t.resolveExcludes(t.opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	exclude = append(exclude, implicitExclude...)

	if t.tsconfig != nil && t.opts.InsertTSConfig {
		tsInclude, err := t.resolveIncludes(ctx, t.tsconfig.Include, false)
		if err != nil {
			return nil, nil, err
		}

		tsExclude, err := t.resolveExcludes(t.tsconfig.Exclude)
		if err != nil {
			return nil, nil, err
		}

		include = append(include, tsInclude...)
		exclude = append(exclude, tsExclude...)
	}

	return include, exclude, nil
}

// resolveIncludes keeps globs, expands directories to their script files and
// keeps existing files, or their import closure when ParseImports is set.
func (t *Transformer) resolveIncludes(ctx context.Context, entries []string, check bool) ([]string, error) {
	out := make([]string, 0, len(entries))

	for _, entry := range entries {
		if isGlob(entry) {
			out = append(out, entry)
			continue
		}

		path := t.abs(entry)

		isDir, err := t.deps.FS.IsDir(path)
		if err != nil {
			return nil, err
		}

		if isDir {
			out = append(out, escapeMeta(filepath.ToSlash(string(path)))+scriptFiles)
			continue
		}

		exists, err := t.deps.FS.Exists(path)
		if err != nil {
			return nil, err
		}

		switch {
		case exists && t.opts.ParseImports:
			files, err := t.imports.Expand(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("transformer %s: %w", t.opts.Name, err)
			}

			for _, file := range files {
				out = append(out, escapeMeta(filepath.ToSlash(string(file))))
			}
		case exists:
			out = append(out, escapeMeta(filepath.ToSlash(string(path))))
		case check:
			return nil, fmt.Errorf("transformer %s: %w: %s", t.opts.Name, ErrIncludeNotFound, entry)
		default:
			t.logger.Debug("include matches nothing", "entry", entry)
		}
	}

	return out, nil
}

// resolveExcludes keeps globs and files and turns directories into subtree
// patterns.
func (t *Transformer) resolveExcludes(entries []string) ([]string, error) {
	out := make([]string, 0, len(entries))

	for _, entry := range entries {
		if isGlob(entry) {
			out = append(out, entry)
			continue
		}

		path := t.abs(entry)

		isDir, err := t.deps.FS.IsDir(path)
		if err != nil {
			return nil, err
		}

		pattern := escapeMeta(filepath.ToSlash(string(path)))
		if isDir {
			pattern += "/**"
		}

		out = append(out, pattern)
	}

	return out, nil
}

// resolveTSSrc finds the TypeScript origin of a dist file: a sibling .ts or
// .tsx first, then the same path re-rooted from outDir to rootDir.
func (t *Transformer) resolveTSSrc(path m.Path) m.Path {
	stem := strings.TrimSuffix(string(path), filepath.Ext(string(path)))

	if found, ok := t.probeTS(stem); ok {
		return found
	}

	if t.tsconfig == nil || t.tsconfig.OutDir == "" {
		return ""
	}

	rootDir := t.tsconfig.RootDir
	if rootDir == "" {
		rootDir = t.tsconfig.Dir
	}

	rel, err := filepath.Rel(string(t.tsconfig.OutDir), stem)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}

	found, _ := t.probeTS(filepath.Join(string(rootDir), rel))

	return found
}

func (t *Transformer) probeTS(stem string) (m.Path, bool) {
	for _, ext := range []string{".ts", ".tsx"} {
		candidate := m.Path(stem + ext)
		if ok, err := t.deps.FS.Exists(candidate); err == nil && ok {
			return candidate, true
		}
	}

	return "", false
}

// inferType maps a file extension to its source type. Declaration files and
// unknown extensions are skipped.
func inferType(path m.Path) (m.SourceType, bool) {
	name := strings.ToLower(filepath.Base(string(path)))
	if strings.HasSuffix(name, ".d.ts") {
		return "", false
	}

	switch filepath.Ext(name) {
	case ".ts", ".tsx":
		return m.SourceSrc, true
	case ".js", ".jsx":
		return m.SourceDist, true
	default:
		return "", false
	}
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func escapeMeta(path string) string {
	var b strings.Builder

	for i := 0; i < len(path); i++ {
		if strings.IndexByte(`*?[]{}\`, path[i]) >= 0 {
			b.WriteByte('\\')
		}

		b.WriteByte(path[i])
	}

	return b.String()
}
