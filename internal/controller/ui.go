// Package controller provides the user-facing adapters of the transformer:
// confirmation prompts, diffs, source listings and run summaries.
package controller

import (
	"context"

	m "github.com/mouse-blink/xform/internal/model"
)

// UI defines how the transformer talks to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Confirm asks a yes/no question. A cancelled context yields its error.
	Confirm(ctx context.Context, question string) (bool, error)
	// DisplayDiff shows the per-step diffs of one file.
	DisplayDiff(path m.Path, diffs []m.Diff)
	// DisplaySources lists discovered sources.
	DisplaySources(sources []*m.Source) error
	// DisplaySummary shows the outcome of every transformer run.
	DisplaySummary(results []m.Result)
	// DisplayWarning shows a non-fatal message.
	DisplayWarning(message string)
	// DisplayPlugins lists the available plugin ids.
	DisplayPlugins(ids []string)
}

// sourceOrigin returns the originating source of a dist file, or "-".
func sourceOrigin(src *m.Source) string {
	if src.TSSrc == "" {
		return "-"
	}

	return string(src.TSSrc)
}

func countChanged(result m.Result) (changed, saved int) {
	for _, f := range result.Files {
		if f.Steps > 0 {
			changed++
		}

		if f.Saved {
			saved++
		}
	}

	return changed, saved
}
