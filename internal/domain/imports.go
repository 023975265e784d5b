package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mouse-blink/xform/internal/adapter"
	"github.com/mouse-blink/xform/internal/iterator"
	m "github.com/mouse-blink/xform/internal/model"
)

const importCacheSize = 1024

// resolveExtensions are probed, in order, for extensionless specifiers.
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// ImportGraph resolves the relative imports of source files. Parsed
// specifiers are cached per path.
type ImportGraph struct {
	fs    adapter.SourceFSAdapter
	cache *lru.Cache[m.Path, []string]
}

// NewImportGraph creates an ImportGraph caching up to size files.
func NewImportGraph(fs adapter.SourceFSAdapter, size int) *ImportGraph {
	if size <= 0 {
		size = importCacheSize
	}

	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[m.Path, []string](size)

	return &ImportGraph{fs: fs, cache: cache}
}

// Imports returns the module specifiers imported by path.
func (g *ImportGraph) Imports(path m.Path) ([]string, error) {
	if specs, ok := g.cache.Get(path); ok {
		return specs, nil
	}

	data, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read imports of %s: %w", path, err)
	}

	specs := ParseImports(string(data))
	g.cache.Add(path, specs)

	return specs, nil
}

// Expand returns root followed by every file it transitively imports
// through relative specifiers. Package imports are not followed.
func (g *ImportGraph) Expand(ctx context.Context, root m.Path) ([]m.Path, error) {
	seen := map[m.Path]struct{}{root: {}}
	queue := []m.Path{root}

	var out []m.Path

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := queue[0]
		queue = queue[1:]
		out = append(out, current)

		specs, err := g.Imports(current)
		if err != nil {
			return nil, err
		}

		for _, spec := range specs {
			resolved, ok := g.Resolve(current, spec)
			if !ok {
				continue
			}

			if _, dup := seen[resolved]; dup {
				continue
			}

			seen[resolved] = struct{}{}
			queue = append(queue, resolved)
		}
	}

	return out, nil
}

// Resolve maps a relative specifier imported by from to an existing file.
func (g *ImportGraph) Resolve(from m.Path, spec string) (m.Path, bool) {
	if !isRelativeImport(spec) {
		return "", false
	}

	base := filepath.Join(filepath.Dir(string(from)), filepath.FromSlash(spec))

	var candidates []string

	switch ext := filepath.Ext(base); ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		stem := strings.TrimSuffix(base, ext)
		candidates = append(candidates, base, stem+".ts", stem+".tsx")
	case ".ts", ".tsx":
		candidates = append(candidates, base)
	}

	for _, ext := range resolveExtensions {
		candidates = append(candidates, base+ext)
	}

	for _, ext := range resolveExtensions {
		candidates = append(candidates, filepath.Join(base, "index"+ext))
	}

	for _, candidate := range candidates {
		if g.isFile(m.Path(candidate)) {
			return m.Path(candidate), true
		}
	}

	return "", false
}

func (g *ImportGraph) isFile(path m.Path) bool {
	exists, err := g.fs.Exists(path)
	if err != nil || !exists {
		return false
	}

	dir, err := g.fs.IsDir(path)

	return err == nil && !dir
}

func isRelativeImport(spec string) bool {
	return spec == "." || spec == ".." ||
		strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

// ParseImports returns the specifiers of static imports, re-exports,
// dynamic imports and require calls found in code.
func ParseImports(data string) []string {
	it := iterator.New(data, iterator.JS())

	var specs []string

	it.Walk(func(it *iterator.Iterator) bool {
		if !it.State.IsCode() || !it.IsVariableChar() {
			return true
		}

		prev := it.PeekPrev()
		word := it.ConsumeWhile(identChar)

		if isIdentByte(prev) || prev == '.' {
			return true
		}

		var (
			spec string
			ok   bool
		)

		switch word {
		case "import":
			spec, ok = importSpecifier(it)
		case "export":
			spec, ok = exportSpecifier(it)
		case "require":
			spec, ok = callSpecifier(it)
		}

		if ok {
			specs = append(specs, spec)
		}

		return true
	})

	return specs
}

func importSpecifier(it *iterator.Iterator) (string, bool) {
	it.ConsumeWhitespace()

	switch c := it.Peek(0); {
	case c == '(':
		return callSpecifier(it)
	case c == '.':
		return "", false
	case isQuoteByte(c):
		return readString(it)
	default:
		return fromClause(it)
	}
}

func exportSpecifier(it *iterator.Iterator) (string, bool) {
	it.ConsumeWhitespace()

	if c := it.Peek(0); c != '{' && c != '*' {
		return "", false
	}

	return fromClause(it)
}

func callSpecifier(it *iterator.Iterator) (string, bool) {
	it.ConsumeWhitespace()

	if !it.ConsumeOptional("(") {
		return "", false
	}

	it.ConsumeWhitespace()

	return readString(it)
}

// fromClause scans an import or export clause up to its from keyword. The
// cursor is rewound when another statement keyword is reached first.
func fromClause(it *iterator.Iterator) (string, bool) {
	for !it.IsEOF() {
		if !it.State.IsCode() {
			it.Advance()
			continue
		}

		c := it.Peek(0)
		if c == ';' {
			return "", false
		}

		if !isIdentByte(c) || isIdentByte(it.PeekPrev()) {
			it.Advance()
			continue
		}

		saved := it.State.Copy()

		switch it.ConsumeWhile(identChar) {
		case "from":
			it.ConsumeWhitespace()

			if isQuoteByte(it.Peek(0)) {
				return readString(it)
			}
		case "import", "export", "require":
			it.State = saved
			return "", false
		}
	}

	return "", false
}

// readString consumes the string literal at the cursor and returns its
// content. Template literals with substitutions are rejected.
func readString(it *iterator.Iterator) (string, bool) {
	quote := it.Peek(0)
	if !isQuoteByte(quote) {
		return "", false
	}

	start := it.State.Offset + 1
	it.Advance()

	for !it.IsEOF() && it.State.Str != "" {
		it.Advance()
	}

	if it.State.Str != "" {
		return "", false
	}

	spec := it.Slice(start, it.State.Offset-1)
	if quote == '`' && strings.Contains(spec, "${") {
		return "", false
	}

	return spec, true
}

func identChar(c byte, _ int) bool {
	return isIdentByte(c)
}

func isIdentByte(c byte) bool {
	return c == '$' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isQuoteByte(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}
