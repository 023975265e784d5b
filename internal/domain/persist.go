package domain

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/semaphore"

	m "github.com/mouse-blink/xform/internal/model"
)

const diffContext = 3

// PromptGate serializes interactive prompts. Once a change is rejected no
// further prompt is shown.
type PromptGate struct {
	sem     *semaphore.Weighted
	aborted atomic.Bool
}

// NewPromptGate creates an open PromptGate.
func NewPromptGate() *PromptGate {
	return &PromptGate{sem: semaphore.NewWeighted(1)}
}

// Acquire waits for the prompt. It fails with ErrAborted after a rejection.
func (g *PromptGate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	if g.aborted.Load() {
		g.sem.Release(1)
		return ErrAborted
	}

	if err := ctx.Err(); err != nil {
		g.sem.Release(1)
		return err
	}

	return nil
}

// Release frees the prompt.
func (g *PromptGate) Release() {
	g.sem.Release(1)
}

// Abort closes the gate for every later Acquire.
func (g *PromptGate) Abort() {
	g.aborted.Store(true)
}

// save writes a changed source. Without auto-confirm the user sees every
// transformation step and must accept it; a rejection aborts the run.
func (t *Transformer) save(ctx context.Context, src *m.Source) error {
	if t.opts.Yes {
		return t.write(src)
	}

	if err := t.deps.Prompt.Acquire(ctx); err != nil {
		return err
	}
	defer t.deps.Prompt.Release()

	diffs, err := RenderDiffs(src)
	if err != nil {
		return err
	}

	t.deps.UI.DisplayDiff(src.Path, diffs)

	ok, err := t.deps.UI.Confirm(ctx, fmt.Sprintf("Apply %d transformation(s) to %s?", len(diffs), src.Path))
	if err != nil {
		return fmt.Errorf("confirm %s: %w", src.Path, err)
	}

	if !ok {
		t.deps.Prompt.Abort()
		return ErrAborted
	}

	return t.write(src)
}

func (t *Transformer) write(src *m.Source) error {
	if err := t.deps.FS.WriteFile(src.Path, []byte(src.Data)); err != nil {
		return fmt.Errorf("save %s: %w", src.Path, err)
	}

	t.logger.Info("saved", "file", src.Path, "steps", len(src.Changes))

	return nil
}

// RenderDiffs returns one unified diff per recorded change of src.
func RenderDiffs(src *m.Source) ([]m.Diff, error) {
	states := make([]string, 0, len(src.Changes)+1)
	states = append(states, src.Changes...)
	states = append(states, src.Data)

	diffs := make([]m.Diff, 0, len(src.Changes))

	for i := range src.Changes {
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(states[i]),
			B:        difflib.SplitLines(states[i+1]),
			FromFile: string(src.Path),
			ToFile:   string(src.Path),
			Context:  diffContext,
		})
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", src.Path, err)
		}

		diffs = append(diffs, m.Diff{
			Step:    i + 1,
			Title:   fmt.Sprintf("Transformation %d", i+1),
			Unified: text,
		})
	}

	return diffs, nil
}
