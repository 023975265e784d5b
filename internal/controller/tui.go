package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/xform/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	delStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUI implements UI using Bubble Tea for prompts and listings.
type TUI struct {
	input  io.Reader
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(input io.Reader, output io.Writer) *TUI {
	return &TUI{input: input, output: output}
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return final, ctxErr
		}

		return final, err
	}

	return final, nil
}

// Confirm runs a one-question Bubble Tea program.
func (t *TUI) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	final, err := t.run(ctx, newConfirmModel(question))
	if err != nil {
		return false, err
	}

	model, ok := final.(confirmModel)
	if !ok {
		return false, errors.New("confirm: unexpected model")
	}

	return model.accepted, nil
}

// DisplayDiff prints colored unified diffs.
func (t *TUI) DisplayDiff(path m.Path, diffs []m.Diff) {
	t.printf("\n%s\n", headerStyle.Render(string(path)))

	for _, d := range diffs {
		t.printf("%s\n", titleStyle.Render(d.Title))

		for _, line := range strings.Split(strings.TrimSuffix(d.Unified, "\n"), "\n") {
			t.printf("%s\n", colorDiffLine(line))
		}
	}
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return mutedStyle.Render(line)
	case strings.HasPrefix(line, "@@"):
		return hunkStyle.Render(line)
	case strings.HasPrefix(line, "+"):
		return addStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return delStyle.Render(line)
	default:
		return line
	}
}

// DisplaySources opens a browsable list of sources.
func (t *TUI) DisplaySources(sources []*m.Source) error {
	if len(sources) == 0 {
		t.printf("No source files found\n")
		return nil
	}

	model, _ := newSourcesModel().Update(newSourcesMsg(sources))

	_, err := t.run(context.Background(), model)

	return err
}

// DisplaySummary prints one styled line per transformer run.
func (t *TUI) DisplaySummary(results []m.Result) {
	for _, result := range results {
		changed, saved := countChanged(result)

		var outcome string

		switch result.Outcome {
		case m.OutcomeDone:
			outcome = addStyle.Render("✓ done")
		case m.OutcomeWarning:
			outcome = warningStyle.Render("! warning")
		case m.OutcomeAborted:
			outcome = delStyle.Render("✗ aborted")
		default:
			outcome = string(result.Outcome)
		}

		t.printf("%s %s %s\n",
			outcome,
			headerStyle.Render(result.Name),
			mutedStyle.Render(fmt.Sprintf("files %d • changed %d • saved %d", len(result.Files), changed, saved)),
		)

		if result.Message != "" {
			t.printf("  %s\n", mutedStyle.Render(result.Message))
		}
	}
}

// DisplayWarning prints a highlighted warning.
func (t *TUI) DisplayWarning(message string) {
	t.printf("%s %s\n", warningStyle.Render("warning:"), message)
}

// DisplayPlugins prints the plugin ids.
func (t *TUI) DisplayPlugins(ids []string) {
	for _, id := range ids {
		t.printf("%s %s\n", mutedStyle.Render("•"), titleStyle.Render(id))
	}
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.output, format, args...)
}
