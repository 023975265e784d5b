package adapter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mouse-blink/xform/internal/iterator"
	m "github.com/mouse-blink/xform/internal/model"
)

// ErrInvalidTSConfig is returned for unreadable or malformed tsconfig files.
var ErrInvalidTSConfig = errors.New("invalid tsconfig")

// TSConfigLoader loads the tsconfig fields used during discovery.
type TSConfigLoader interface {
	Load(path m.Path) (*m.TSConfig, error)
}

// LocalTSConfigLoader reads tsconfig files through a SourceFSAdapter.
// Include, exclude, rootDir and outDir are returned as absolute paths and
// patterns, with relative "extends" chains followed.
type LocalTSConfigLoader struct {
	fs SourceFSAdapter
}

// NewTSConfigLoader constructs a LocalTSConfigLoader.
func NewTSConfigLoader(fs SourceFSAdapter) *LocalTSConfigLoader {
	return &LocalTSConfigLoader{fs: fs}
}

// Load reads and resolves the tsconfig at path.
func (l *LocalTSConfigLoader) Load(path m.Path) (*m.TSConfig, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return nil, err
	}

	cfg, err := l.load(abs, map[string]struct{}{})
	if err != nil {
		return nil, err
	}

	if cfg.Include == nil {
		cfg.Include = []string{filepath.ToSlash(filepath.Join(string(cfg.Dir), "**/*"))}
	}

	return cfg, nil
}

func (l *LocalTSConfigLoader) load(path string, visited map[string]struct{}) (*m.TSConfig, error) {
	if _, ok := visited[path]; ok {
		return nil, fmt.Errorf("%w: extends cycle at %s", ErrInvalidTSConfig, path)
	}

	visited[path] = struct{}{}

	data, err := l.fs.ReadFile(m.Path(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTSConfig, err)
	}

	normalized := StripJSONC(string(data))
	if !gjson.Valid(normalized) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidTSConfig, path)
	}

	doc := gjson.Parse(normalized)
	dir := filepath.Dir(path)

	cfg := &m.TSConfig{Path: m.Path(path), Dir: m.Path(dir)}

	for _, parent := range extendsOf(doc) {
		if !isRelativeSpecifier(parent) {
			continue
		}

		parentPath := filepath.Join(dir, parent)
		if filepath.Ext(parentPath) != ".json" {
			parentPath += ".json"
		}

		base, err := l.load(parentPath, visited)
		if err != nil {
			return nil, err
		}

		inherit(cfg, base)
	}

	if include := doc.Get("include"); include.IsArray() {
		cfg.Include = anchorAll(dir, include)
	}

	if exclude := doc.Get("exclude"); exclude.IsArray() {
		cfg.Exclude = anchorAll(dir, exclude)
	}

	if rootDir := doc.Get("compilerOptions.rootDir"); rootDir.Type == gjson.String {
		cfg.RootDir = m.Path(filepath.Join(dir, rootDir.String()))
	}

	if outDir := doc.Get("compilerOptions.outDir"); outDir.Type == gjson.String {
		cfg.OutDir = m.Path(filepath.Join(dir, outDir.String()))
	}

	return cfg, nil
}

func extendsOf(doc gjson.Result) []string {
	ext := doc.Get("extends")

	switch {
	case ext.Type == gjson.String:
		return []string{ext.String()}
	case ext.IsArray():
		var out []string
		for _, item := range ext.Array() {
			out = append(out, item.String())
		}

		return out
	default:
		return nil
	}
}

func inherit(cfg, base *m.TSConfig) {
	if base.Include != nil {
		cfg.Include = base.Include
	}

	if base.Exclude != nil {
		cfg.Exclude = base.Exclude
	}

	if base.RootDir != "" {
		cfg.RootDir = base.RootDir
	}

	if base.OutDir != "" {
		cfg.OutDir = base.OutDir
	}
}

func anchorAll(dir string, list gjson.Result) []string {
	out := []string{}

	for _, item := range list.Array() {
		pattern := item.String()
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}

		out = append(out, filepath.ToSlash(pattern))
	}

	return out
}

func isRelativeSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || filepath.IsAbs(spec)
}

// StripJSONC blanks out comments and trailing commas of a JSON-with-comments
// document. Offsets and line breaks are preserved.
func StripJSONC(data string) string {
	out := []byte(data)

	it := iterator.New(data, iterator.JSON())
	for !it.IsEOF() {
		i := it.State.Offset
		inComment := it.State.Comment.Kind != iterator.CommentNone

		it.Advance()

		if !inComment && it.State.Comment.Kind == iterator.CommentNone {
			continue
		}

		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}

	stripped := string(out)

	it = iterator.New(stripped, &iterator.Options{Strings: []string{"\""}})
	for !it.IsEOF() {
		i := it.State.Offset
		code := it.State.IsCode()
		c := it.Peek(0)

		it.Advance()

		if !code || c != ',' {
			continue
		}

		j := i + 1
		for j < len(out) && isJSONSpace(out[j]) {
			j++
		}

		if j < len(out) && (out[j] == '}' || out[j] == ']') {
			out[i] = ' '
		}
	}

	return string(out)
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
