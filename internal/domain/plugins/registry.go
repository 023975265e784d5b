package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// Factory builds a plugin from its raw configuration options.
type Factory func(options map[string]any) (Plugin, error)

// Registry maps plugin ids to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with every built-in plugin.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(UpsertRuntimeVarsID, newUpsertFromOptions)
	r.Register(DirnameID, func(map[string]any) (Plugin, error) { return NewDirname() })
	r.Register(HeaderID, newHeaderFromOptions)
	r.Register(NoDebugID, newNoDebugFromOptions)
	r.Register(FillTemplatesID, newFillTemplatesFromOptions)

	return r
}

// Register adds or replaces the factory for id.
func (r *Registry) Register(id string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[id] = factory
}

// New builds the plugin registered under id.
func (r *Registry) New(id string, options map[string]any) (Plugin, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPlugin, id)
	}

	p, err := factory(options)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", id, err)
	}

	return p, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func decodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(options); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}

	return nil
}

type upsertOptions struct {
	Marker string            `mapstructure:"marker"`
	Type   []string          `mapstructure:"type"`
	Vars   map[string]any    `mapstructure:"vars"`
	Paths  map[string]string `mapstructure:"paths"`
	Before string            `mapstructure:"before"`
	After  string            `mapstructure:"after"`
}

func newUpsertFromOptions(options map[string]any) (Plugin, error) {
	var opts upsertOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}

	types, err := ParseTypes(opts.Type, TypeAll)
	if err != nil {
		return nil, err
	}

	return NewUpsertRuntimeVars(UpsertConfig{
		ID:     opts.Marker,
		Types:  types,
		Vars:   sortedVars(opts.Vars, opts.Paths),
		Before: opts.Before,
		After:  opts.After,
	})
}

type headerOptions struct {
	Author    string   `mapstructure:"author"`
	Type      []string `mapstructure:"type"`
	Copyright *struct {
		Name  string `mapstructure:"name"`
		Start int    `mapstructure:"start"`
		End   int    `mapstructure:"end"`
	} `mapstructure:"copyright"`
}

func newHeaderFromOptions(options map[string]any) (Plugin, error) {
	var opts headerOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}

	types, err := ParseTypes(opts.Type, TypeAll)
	if err != nil {
		return nil, err
	}

	cfg := HeaderConfig{Author: opts.Author, Types: types}
	if c := opts.Copyright; c != nil {
		cfg.Copyright = &Copyright{Name: c.Name, Start: c.Start, End: c.End}
	}

	return NewHeader(cfg)
}

type noDebugOptions struct {
	Callee string   `mapstructure:"callee"`
	Type   []string `mapstructure:"type"`
}

func newNoDebugFromOptions(options map[string]any) (Plugin, error) {
	var opts noDebugOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}

	types, err := ParseTypes(opts.Type, TypeDist)
	if err != nil {
		return nil, err
	}

	return NewNoDebug(NoDebugConfig{Callee: opts.Callee, Types: types})
}

type fillTemplatesOptions struct {
	Templates map[string]string `mapstructure:"templates"`
	Prefix    string            `mapstructure:"prefix"`
	Suffix    string            `mapstructure:"suffix"`
	Quote     bool              `mapstructure:"quote"`
	Type      []string          `mapstructure:"type"`
}

func newFillTemplatesFromOptions(options map[string]any) (Plugin, error) {
	var opts fillTemplatesOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}

	types, err := ParseTypes(opts.Type, TypeAll)
	if err != nil {
		return nil, err
	}

	return NewFillTemplates(FillTemplatesConfig{
		Templates: opts.Templates,
		Prefix:    opts.Prefix,
		Suffix:    opts.Suffix,
		Quote:     opts.Quote,
		Types:     types,
	})
}
