package controller

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/xform/internal/model"
)

// SimpleUI implements UI with plain text and tablewriter tables on the
// command's output.
type SimpleUI struct {
	cmd *cobra.Command

	mu      sync.Mutex
	reader  *bufio.Reader
	pending chan answer
}

type answer struct {
	line string
	err  error
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Confirm prints the question and reads one answer line. Only "y" and
// "yes" accept; end of input rejects. A cancelled context returns at once;
// a line typed after that answers the next question.
func (s *SimpleUI) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s [y/N] ", question)

	var got answer

	select {
	case got = <-s.readLine():
		s.pending = nil
	case <-ctx.Done():
		return false, ctx.Err()
	}

	if got.err != nil && !errors.Is(got.err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", got.err)
	}

	switch strings.ToLower(strings.TrimSpace(got.line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the channel of the outstanding read, starting one when
// none is in flight. Callers hold s.mu.
func (s *SimpleUI) readLine() <-chan answer {
	if s.pending != nil {
		return s.pending
	}

	if s.reader == nil {
		s.reader = bufio.NewReader(s.cmd.InOrStdin())
	}

	ch := make(chan answer, 1)
	s.pending = ch

	go func(r *bufio.Reader) {
		line, err := r.ReadString('\n')
		ch <- answer{line: line, err: err}
	}(s.reader)

	return ch
}

// DisplayDiff prints the unified diffs of one file.
func (s *SimpleUI) DisplayDiff(path m.Path, diffs []m.Diff) {
	s.printf("\n%s\n", path)

	for _, d := range diffs {
		s.printf("# %s\n%s", d.Title, d.Unified)

		if !strings.HasSuffix(d.Unified, "\n") {
			s.printf("\n")
		}
	}
}

// DisplaySources prints the discovered sources as a table.
func (s *SimpleUI) DisplaySources(sources []*m.Source) error {
	if len(sources) == 0 {
		s.printf("No source files found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Origin"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	counts := map[m.SourceType]int{}

	for _, src := range sources {
		table.Append([]string{string(src.Path), string(src.Type), sourceOrigin(src)})
		counts[src.Type]++
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sources)),
		fmt.Sprintf("%d src / %d dist", counts[m.SourceSrc], counts[m.SourceDist]),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplaySummary prints one row per transformer run.
func (s *SimpleUI) DisplaySummary(results []m.Result) {
	if len(results) == 0 {
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Transformer", "Outcome", "Files", "Changed", "Saved"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, result := range results {
		changed, saved := countChanged(result)
		table.Append([]string{
			result.Name,
			string(result.Outcome),
			fmt.Sprintf("%d", len(result.Files)),
			fmt.Sprintf("%d", changed),
			fmt.Sprintf("%d", saved),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	for _, result := range results {
		if result.Message != "" {
			s.printf("%s: %s\n", result.Name, result.Message)
		}
	}
}

// DisplayWarning prints a warning line.
func (s *SimpleUI) DisplayWarning(message string) {
	s.printf("warning: %s\n", message)
}

// DisplayPlugins prints one plugin id per line.
func (s *SimpleUI) DisplayPlugins(ids []string) {
	for _, id := range ids {
		s.printf("%s\n", id)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
