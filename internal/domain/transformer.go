// Package domain implements the transformer: file discovery, the per-file
// plugin chain, change persistence and the batch runner.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/xform/internal/adapter"
	"github.com/mouse-blink/xform/internal/controller"
	"github.com/mouse-blink/xform/internal/domain/plugins"
	m "github.com/mouse-blink/xform/internal/model"
)

var (
	// ErrAborted is returned when the user rejects a change.
	ErrAborted = errors.New("aborted")
	// ErrIncludeNotFound is returned for missing include paths when
	// CheckInclude is set.
	ErrIncludeNotFound = errors.New("included path does not exist")
)

const noFilesMessage = "no files matched the include patterns"

// Options configures a Transformer.
type Options struct {
	Name    string
	Include []string
	Exclude []string
	// TSConfig is loaded at construction when set.
	TSConfig m.Path
	// InsertTSConfig merges the tsconfig include and exclude lists.
	InsertTSConfig bool
	// CheckInclude fails on include entries that are neither a glob nor an
	// existing path.
	CheckInclude bool
	// ParseImports expands included files to their transitive imports.
	ParseImports bool
	// Yes writes changes without asking.
	Yes bool
	// Async processes files concurrently.
	Async bool
	// Concurrency limits concurrent files when Async is set. Zero means no limit.
	Concurrency int
	// Files are in-memory sources processed in addition to discovered ones.
	Files   []*m.Source
	Plugins []plugins.Plugin
	Cwd     m.Path
}

// Deps are the collaborators of a Transformer.
type Deps struct {
	FS        adapter.SourceFSAdapter
	TSConfigs adapter.TSConfigLoader
	// UI is required unless Options.Yes is set.
	UI     controller.UI
	Logger *slog.Logger
	// Prompt is shared by transformers of one batch. Defaults to a
	// private gate.
	Prompt *PromptGate
}

// Transformer runs an ordered plugin chain over a set of files.
type Transformer struct {
	opts     Options
	deps     Deps
	logger   *slog.Logger
	tsconfig *m.TSConfig
	imports  *ImportGraph
	events   *fileLogger

	buildOnce sync.Once
	buildErr  error
}

// NewTransformer validates the configuration and loads the tsconfig.
func NewTransformer(opts Options, deps Deps) (*Transformer, error) {
	if opts.Name == "" {
		opts.Name = "transformer"
	}

	if deps.FS == nil {
		return nil, fmt.Errorf("transformer %s: file system adapter required", opts.Name)
	}

	if !opts.Yes && deps.UI == nil {
		return nil, fmt.Errorf("transformer %s: ui required without auto-confirm", opts.Name)
	}

	if opts.Concurrency < 0 {
		return nil, fmt.Errorf("transformer %s: negative concurrency %d", opts.Name, opts.Concurrency)
	}

	if err := plugins.CheckUnique(opts.Plugins); err != nil {
		return nil, fmt.Errorf("transformer %s: %w", opts.Name, err)
	}

	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.TSConfigs == nil {
		deps.TSConfigs = adapter.NewTSConfigLoader(deps.FS)
	}

	if deps.Prompt == nil {
		deps.Prompt = NewPromptGate()
	}

	if opts.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}

		opts.Cwd = m.Path(wd)
	}

	logger := deps.Logger.With("transformer", opts.Name)

	t := &Transformer{
		opts:    opts,
		deps:    deps,
		logger:  logger,
		imports: NewImportGraph(deps.FS, importCacheSize),
		events:  &fileLogger{logger: logger},
	}

	if opts.TSConfig != "" {
		cfg, err := deps.TSConfigs.Load(t.abs(string(opts.TSConfig)))
		if err != nil {
			return nil, fmt.Errorf("transformer %s: %w", opts.Name, err)
		}

		t.tsconfig = cfg
	}

	return t, nil
}

// Name returns the transformer name.
func (t *Transformer) Name() string {
	return t.opts.Name
}

// TSConfig returns the loaded tsconfig, or nil.
func (t *Transformer) TSConfig() *m.TSConfig {
	return t.tsconfig
}

// Run builds the plugins, discovers the sources and processes them.
// A user rejection is reported as OutcomeAborted, not as an error.
func (t *Transformer) Run(ctx context.Context) (m.Result, error) {
	result := m.Result{Name: t.opts.Name}

	if err := t.build(ctx); err != nil {
		return result, err
	}

	discovered, err := t.Discover(ctx)
	if err != nil {
		return result, err
	}

	sources := append(discovered, t.opts.Files...)
	if len(sources) == 0 {
		result.Outcome = m.OutcomeWarning
		result.Message = noFilesMessage

		return result, nil
	}

	saved, err := t.process(ctx, sources)

	result.Files = fileReports(sources, saved)
	result.Sources = sources

	switch {
	case errors.Is(err, ErrAborted):
		result.Outcome = m.OutcomeAborted
		result.Message = "rejected by user"

		return result, nil
	case err != nil:
		return result, err
	}

	result.Outcome = m.OutcomeDone

	return result, nil
}

func (t *Transformer) build(ctx context.Context) error {
	t.buildOnce.Do(func() {
		env := plugins.BuildEnv{Logger: t.logger, Cwd: t.opts.Cwd, TSConfig: t.tsconfig}

		for _, p := range t.opts.Plugins {
			if err := p.Build(ctx, env); err != nil {
				t.buildErr = fmt.Errorf("transformer %s: %w", t.opts.Name, err)
				return
			}
		}
	})

	return t.buildErr
}

func (t *Transformer) process(ctx context.Context, sources []*m.Source) ([]bool, error) {
	saved := make([]bool, len(sources))

	if !t.opts.Async {
		for i, src := range sources {
			ok, err := t.processFile(ctx, src)
			saved[i] = ok

			if err != nil {
				return saved, err
			}
		}

		return saved, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if t.opts.Concurrency > 0 {
		g.SetLimit(t.opts.Concurrency)
	}

	for i, src := range sources {
		g.Go(func() error {
			ok, err := t.processFile(gctx, src)
			saved[i] = ok

			return err
		})
	}

	return saved, g.Wait()
}

// processFile runs the plugin chain over one source and saves the result.
func (t *Transformer) processFile(ctx context.Context, src *m.Source) (bool, error) {
	var rule *ignoreRule

	for _, p := range t.opts.Plugins {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		if !p.Type().Has(src.Type) {
			continue
		}

		if err := t.load(src); err != nil {
			return false, err
		}

		if rule == nil {
			r := fileIgnoreRule(src.Data)
			rule = &r
		}

		if rule.ignores(p.ID()) {
			t.events.log(src, p.ID(), "ignored")
			continue
		}

		before := src.Data
		wasChanged := src.Changed
		src.Changed = false

		if err := p.Callback(ctx, src); err != nil {
			return false, fmt.Errorf("plugin %s on %s: %w", p.ID(), src.Path, err)
		}

		if src.Changed {
			src.Changes = append(src.Changes, before)
			t.events.log(src, p.ID(), "changed")
		} else {
			t.events.log(src, p.ID(), "unchanged")
		}

		src.Changed = src.Changed || wasChanged
	}

	if src.InMemory || !src.Changed {
		return false, nil
	}

	if err := t.save(ctx, src); err != nil {
		return false, err
	}

	return true, nil
}

func (t *Transformer) load(src *m.Source) error {
	if src.InMemory || !src.RequiresLoad {
		return nil
	}

	data, err := t.deps.FS.ReadFile(src.Path)
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Path, err)
	}

	src.Data = string(data)
	src.RequiresLoad = false

	return nil
}

func (t *Transformer) abs(path string) m.Path {
	if filepath.IsAbs(path) {
		return m.Path(filepath.Clean(path))
	}

	return m.Path(filepath.Join(string(t.opts.Cwd), path))
}

func fileReports(sources []*m.Source, saved []bool) []m.FileReport {
	reports := make([]m.FileReport, 0, len(sources))

	for i, src := range sources {
		reports = append(reports, m.FileReport{
			Path:  src.Path,
			Type:  src.Type,
			Steps: len(src.Changes),
			Saved: saved[i],
		})
	}

	return reports
}

// fileLogger prints the file header once for consecutive plugin events of
// the same file.
type fileLogger struct {
	mu     sync.Mutex
	logger *slog.Logger
	last   m.Path
}

func (l *fileLogger) log(src *m.Source, plugin, event string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.last != src.Path {
		l.last = src.Path
		l.logger.Debug("file", "path", src.DisplayPath(), "type", src.Type)
	}

	l.logger.Debug(event, "plugin", plugin)
}
