// Package plugins provides the transformation plugin contract and the
// concrete plugins that rewrite source files.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	m "github.com/mouse-blink/xform/internal/model"
)

var (
	// ErrInvalidID is returned when a plugin id is empty or malformed.
	ErrInvalidID = errors.New("invalid plugin id")
	// ErrDuplicateID is returned when two plugins share an id.
	ErrDuplicateID = errors.New("duplicate plugin id")
	// ErrUnknownPlugin is returned by the registry for unregistered ids.
	ErrUnknownPlugin = errors.New("unknown plugin")
)

var idPattern = regexp.MustCompile(`^[\w-]+$`)

// Plugin is a named transformation applied to every eligible source.
type Plugin interface {
	// ID returns the unique plugin id.
	ID() string
	// Type returns the source types the plugin runs on.
	Type() TypeSet
	// Build initializes the plugin once before the first Callback.
	Build(ctx context.Context, env BuildEnv) error
	// Callback rewrites src.Data and marks src.Changed on any edit.
	Callback(ctx context.Context, src *m.Source) error
}

// BuildEnv is passed to Plugin.Build.
type BuildEnv struct {
	Logger   *slog.Logger
	Cwd      m.Path
	TSConfig *m.TSConfig
}

// TypeSet is a set of source types.
type TypeSet uint8

// Type sets.
const (
	TypeSrc TypeSet = 1 << iota
	TypeDist

	TypeAll = TypeSrc | TypeDist
)

// Types builds a TypeSet from source types.
func Types(types ...m.SourceType) TypeSet {
	var set TypeSet

	for _, t := range types {
		switch t {
		case m.SourceSrc:
			set |= TypeSrc
		case m.SourceDist:
			set |= TypeDist
		}
	}

	return set
}

// ParseTypes parses "src" and "dist" names. An empty list yields def.
func ParseTypes(names []string, def TypeSet) (TypeSet, error) {
	if len(names) == 0 {
		return def, nil
	}

	var set TypeSet

	for _, name := range names {
		switch m.SourceType(strings.ToLower(strings.TrimSpace(name))) {
		case m.SourceSrc:
			set |= TypeSrc
		case m.SourceDist:
			set |= TypeDist
		default:
			return 0, fmt.Errorf("unknown source type %q", name)
		}
	}

	return set, nil
}

// Has reports whether any of the queried types is in the set.
func (t TypeSet) Has(query ...m.SourceType) bool {
	return t&Types(query...) != 0
}

func (t TypeSet) String() string {
	switch t {
	case TypeSrc:
		return string(m.SourceSrc)
	case TypeDist:
		return string(m.SourceDist)
	case TypeAll:
		return string(m.SourceSrc) + "|" + string(m.SourceDist)
	default:
		return "none"
	}
}

// Base carries the id, type and nested plugins every concrete plugin
// embeds. Plugins reuse each other by holding an instance and forwarding
// calls to it, never by embedding another concrete plugin.
type Base struct {
	id     string
	types  TypeSet
	nested []Plugin
	init   func(ctx context.Context, env BuildEnv) error
	logger *slog.Logger
}

// BaseOption configures a Base.
type BaseOption func(*Base)

// WithNested registers plugins that are built together with this one.
func WithNested(plugins ...Plugin) BaseOption {
	return func(b *Base) {
		b.nested = append(b.nested, plugins...)
	}
}

// WithInit sets a hook that runs after the nested plugins were built.
func WithInit(fn func(ctx context.Context, env BuildEnv) error) BaseOption {
	return func(b *Base) {
		b.init = fn
	}
}

// NewBase validates id and returns a Base.
func NewBase(id string, types TypeSet, opts ...BaseOption) (Base, error) {
	if !idPattern.MatchString(id) {
		return Base{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	if types == 0 {
		return Base{}, fmt.Errorf("plugin %s: no source type", id)
	}

	b := Base{id: id, types: types}
	for _, opt := range opts {
		opt(&b)
	}

	return b, nil
}

// ID returns the plugin id.
func (b *Base) ID() string {
	return b.id
}

// Type returns the source types the plugin runs on.
func (b *Base) Type() TypeSet {
	return b.types
}

// Plugins returns the nested plugins.
func (b *Base) Plugins() []Plugin {
	return b.nested
}

// Build builds the nested plugins, then runs the init hook.
func (b *Base) Build(ctx context.Context, env BuildEnv) error {
	b.logger = env.Logger

	for _, p := range b.nested {
		if err := p.Build(ctx, env); err != nil {
			return fmt.Errorf("plugin %s: %w", b.id, err)
		}
	}

	if b.init == nil {
		return nil
	}

	if err := b.init(ctx, env); err != nil {
		return fmt.Errorf("plugin %s: init: %w", b.id, err)
	}

	return nil
}

// Logger returns the logger received in Build, or a discarding logger.
func (b *Base) Logger() *slog.Logger {
	if b.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return b.logger
}

// CheckUnique fails with ErrDuplicateID when two plugins share an id.
func CheckUnique(list []Plugin) error {
	seen := make(map[string]struct{}, len(list))

	for i, p := range list {
		if p == nil {
			return fmt.Errorf("plugin %d is nil", i)
		}

		if _, ok := seen[p.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID())
		}

		seen[p.ID()] = struct{}{}
	}

	return nil
}
