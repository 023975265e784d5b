package controller

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))

	if ui, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	} else if ui.input == nil || ui.output == nil {
		t.Errorf("NewUI(true) did not wire command streams")
	}

	if ui := NewUI(cmd, false); ui == nil {
		t.Fatal("NewUI(false) returned nil")
	} else if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "xform-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}

	if IsTTY(file) {
		t.Errorf("IsTTY(regular file) = true, want false")
	}

	file.Close()

	if IsTTY(file) {
		t.Errorf("IsTTY(closed file) = true, want false")
	}

	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY(buffer) = true, want false")
	}

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip("null device not available")
	}
	defer devNull.Close()

	if !IsTTY(devNull) {
		t.Errorf("IsTTY(%s) = false, want true", os.DevNull)
	}
}
