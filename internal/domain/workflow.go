package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mouse-blink/xform/internal/adapter"
	"github.com/mouse-blink/xform/internal/controller"
	"github.com/mouse-blink/xform/internal/domain/plugins"
	m "github.com/mouse-blink/xform/internal/model"
)

// ErrNoTransformers is returned when a run has nothing to do.
var ErrNoTransformers = errors.New("no transformers configured")

// PluginSpec names a registered plugin and its raw options.
type PluginSpec struct {
	ID      string
	Options map[string]any
}

// TransformerSpec is the declarative form of a transformer.
type TransformerSpec struct {
	Name           string
	Include        []string
	Exclude        []string
	TSConfig       m.Path
	InsertTSConfig bool
	CheckInclude   bool
	ParseImports   bool
	Async          bool
	Concurrency    int
	Plugins        []PluginSpec
}

// RunArgs configures Workflow.Run.
type RunArgs struct {
	Transformers []TransformerSpec
	// Yes writes every change without asking.
	Yes bool
	// Parallel runs the transformers concurrently.
	Parallel bool
	Cwd      m.Path
	// Report is written as JSON when set.
	Report m.Path
}

// ViewArgs configures Workflow.View.
type ViewArgs struct {
	// Report is a file written by a previous Run.
	Report m.Path
}

// ListArgs configures Workflow.List.
type ListArgs struct {
	Transformers []TransformerSpec
	Cwd          m.Path
}

// Workflow defines the operations exposed to the command line.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	Plugins() []string
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs        adapter.SourceFSAdapter
	tsconfigs adapter.TSConfigLoader
	reports   adapter.ReportStore
	ui        controller.UI
	registry  *plugins.Registry
	logger    *slog.Logger
}

// NewWorkflow creates a Workflow over the provided adapters.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	tsconfigs adapter.TSConfigLoader,
	reports adapter.ReportStore,
	ui controller.UI,
	registry *plugins.Registry,
	logger *slog.Logger,
) Workflow {
	if registry == nil {
		registry = plugins.DefaultRegistry()
	}

	if tsconfigs == nil {
		tsconfigs = adapter.NewTSConfigLoader(fs)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &workflow{
		fs:        fs,
		tsconfigs: tsconfigs,
		reports:   reports,
		ui:        ui,
		registry:  registry,
		logger:    logger,
	}
}

// Run executes the transformers, shows the summary and writes the report.
// It returns ErrAborted when the user rejected a change.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if len(args.Transformers) == 0 {
		return ErrNoTransformers
	}

	runners := make([]Runner, 0, len(args.Transformers))
	gate := NewPromptGate()

	for _, spec := range args.Transformers {
		t, err := w.newTransformer(spec, args.Yes, args.Cwd, gate)
		if err != nil {
			return err
		}

		runners = append(runners, t)
	}

	outcome, results, err := RunBatch(ctx, w.logger, runners, args.Parallel)

	for _, r := range results {
		if r.Outcome == m.OutcomeWarning {
			w.ui.DisplayWarning(fmt.Sprintf("%s: %s", r.Name, r.Message))
		}
	}

	w.ui.DisplaySummary(completed(results))

	if args.Report != "" && w.reports != nil {
		if saveErr := w.reports.SaveResults(args.Report, completed(results)); saveErr != nil {
			return errors.Join(err, saveErr)
		}
	}

	if err != nil {
		return err
	}

	if outcome == m.OutcomeAborted {
		return ErrAborted
	}

	return nil
}

// List shows the sources every transformer would process.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if len(args.Transformers) == 0 {
		return ErrNoTransformers
	}

	seen := make(map[m.Path]struct{})

	var sources []*m.Source

	for _, spec := range args.Transformers {
		t, err := w.newTransformer(spec, true, args.Cwd, nil)
		if err != nil {
			return err
		}

		found, err := t.Discover(ctx)
		if err != nil {
			return err
		}

		for _, src := range found {
			if _, ok := seen[src.Path]; ok {
				continue
			}

			seen[src.Path] = struct{}{}
			sources = append(sources, src)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	return w.ui.DisplaySources(sources)
}

// View shows the summary stored in a report file.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	if w.reports == nil {
		return errors.New("no report store configured")
	}

	results, err := w.reports.LoadResults(args.Report)
	if err != nil {
		return err
	}

	w.ui.DisplaySummary(results)

	return nil
}

// Plugins returns the registered plugin ids.
func (w *workflow) Plugins() []string {
	return w.registry.IDs()
}

func (w *workflow) newTransformer(spec TransformerSpec, yes bool, cwd m.Path, gate *PromptGate) (*Transformer, error) {
	list := make([]plugins.Plugin, 0, len(spec.Plugins))

	for _, ps := range spec.Plugins {
		p, err := w.registry.New(ps.ID, ps.Options)
		if err != nil {
			return nil, fmt.Errorf("transformer %s: %w", spec.Name, err)
		}

		list = append(list, p)
	}

	return NewTransformer(Options{
		Name:           spec.Name,
		Include:        spec.Include,
		Exclude:        spec.Exclude,
		TSConfig:       spec.TSConfig,
		InsertTSConfig: spec.InsertTSConfig,
		CheckInclude:   spec.CheckInclude,
		ParseImports:   spec.ParseImports,
		Yes:            yes,
		Async:          spec.Async,
		Concurrency:    spec.Concurrency,
		Plugins:        list,
		Cwd:            cwd,
	}, Deps{
		FS:        w.fs,
		TSConfigs: w.tsconfigs,
		UI:        w.ui,
		Logger:    w.logger,
		Prompt:    gate,
	})
}

// completed drops the results of runners that never started.
func completed(results []m.Result) []m.Result {
	out := make([]m.Result, 0, len(results))

	for _, r := range results {
		if r.Outcome != "" {
			out = append(out, r)
		}
	}

	return out
}
