package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	m "github.com/mouse-blink/xform/internal/model"
)

func TestTUI_Confirm_CanceledContext(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(strings.NewReader("y"), &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := tui.Confirm(ctx, "Apply?")
	if err == nil || ok {
		t.Fatalf("Confirm() = %v, %v; want false, context error", ok, err)
	}
}

func TestTUI_Confirm_ReadsKey(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(strings.NewReader("y"), &buf)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ok, err := tui.Confirm(ctx, "Apply?")
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	if !ok {
		t.Fatalf("Confirm() = false, want true")
	}

	if !strings.Contains(buf.String(), "Apply?") {
		t.Fatalf("output missing question\noutput:\n%s", buf.String())
	}
}

func TestTUI_DisplayDiff(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(strings.NewReader(""), &buf)

	tui.DisplayDiff("dist/a.js", []m.Diff{{
		Step:    1,
		Title:   "Transformation 1",
		Unified: "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n same\n",
	}})

	output := buf.String()

	for _, want := range []string{"dist/a.js", "Transformation 1", "-old", "+new", " same"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestTUI_DisplaySummaryAndMessages(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(strings.NewReader(""), &buf)

	tui.DisplaySummary([]m.Result{
		{Name: "build", Outcome: m.OutcomeDone, Files: []m.FileReport{{Path: "a.js", Steps: 1, Saved: true}}},
		{Name: "docs", Outcome: m.OutcomeWarning, Message: "no files matched"},
		{Name: "review", Outcome: m.OutcomeAborted},
	})
	tui.DisplayWarning("careful")
	tui.DisplayPlugins([]string{"Header"})

	output := buf.String()

	for _, want := range []string{
		"done", "build", "files 1 • changed 1 • saved 1",
		"warning", "no files matched",
		"aborted", "review",
		"careful", "Header",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestTUI_DisplaySources_Empty(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(strings.NewReader(""), &buf)

	if err := tui.DisplaySources(nil); err != nil {
		t.Fatalf("DisplaySources() error = %v", err)
	}

	if got := buf.String(); got != "No source files found\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestColorDiffLine_KeepsText(t *testing.T) {
	for _, line := range []string{"+++ b", "--- a", "@@ -1 +1 @@", "+x", "-y", " z"} {
		if got := colorDiffLine(line); !strings.Contains(got, line) {
			t.Fatalf("colorDiffLine(%q) = %q", line, got)
		}
	}
}
