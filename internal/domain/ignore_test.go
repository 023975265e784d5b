package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/xform/internal/domain/plugins"
	m "github.com/mouse-blink/xform/internal/model"
)

func TestParseIgnoreDirective_All(t *testing.T) {
	r, ok := parseIgnoreDirective("// xform:ignore")
	if !ok {
		t.Fatalf("expected directive to be parsed")
	}
	if !r.all || r.ids != nil {
		t.Fatalf("expected all=true and ids=nil")
	}
}

func TestParseIgnoreDirective_IDs(t *testing.T) {
	r, ok := parseIgnoreDirective("//xform:ignore NoDebug, header ")
	if !ok {
		t.Fatalf("expected directive to be parsed")
	}
	if r.all {
		t.Fatalf("expected all=false")
	}
	if len(r.ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(r.ids))
	}
	if !r.ignores("NoDebug") || !r.ignores("Header") {
		t.Fatalf("expected NoDebug and Header to be ignored")
	}
	if r.ignores("Dirname") {
		t.Fatalf("did not expect Dirname to be ignored")
	}
}

func TestParseIgnoreDirective_BlockComment(t *testing.T) {
	r, ok := parseIgnoreDirective("/* xform:ignore FillTemplates */")
	if !ok {
		t.Fatalf("expected directive to be parsed")
	}
	if !r.ignores("filltemplates") {
		t.Fatalf("expected FillTemplates")
	}
}

func TestParseIgnoreDirective_Rejects(t *testing.T) {
	for _, text := range []string{"// xform:ignored", "// other", "// see xform:ignore"} {
		if _, ok := parseIgnoreDirective(text); ok {
			t.Fatalf("unexpected directive in %q", text)
		}
	}
}

func TestMergeIgnoreRule(t *testing.T) {
	var rule ignoreRule

	a, _ := parseIgnoreDirective("// xform:ignore A")
	b, _ := parseIgnoreDirective("// xform:ignore B")
	mergeIgnoreRule(&rule, a)
	mergeIgnoreRule(&rule, b)

	if !rule.ignores("a") || !rule.ignores("b") || rule.ignores("c") {
		t.Fatalf("merge lost ids: %+v", rule)
	}

	all, _ := parseIgnoreDirective("// xform:ignore")
	mergeIgnoreRule(&rule, all)

	if !rule.all || rule.ids != nil {
		t.Fatalf("expected all after merging a bare directive")
	}

	mergeIgnoreRule(&rule, a)

	if !rule.all {
		t.Fatalf("ids must not narrow an all rule")
	}
}

func TestFileIgnoreRule(t *testing.T) {
	const src = "/* xform:ignore Header */\n" +
		"const s = \"// xform:ignore\";\n" +
		"run(); // xform:ignore NoDebug\n"

	rule := fileIgnoreRule(src)
	if rule.all {
		t.Fatalf("directive inside a string was honored")
	}
	if !rule.ignores("Header") || !rule.ignores("NoDebug") {
		t.Fatalf("expected Header and NoDebug, got %+v", rule)
	}

	if r := fileIgnoreRule("run();\n"); r.all || len(r.ids) != 0 {
		t.Fatalf("unexpected rule without directives: %+v", r)
	}
}

func TestTransformer_HonorsIgnoreDirective(t *testing.T) {
	root := t.TempDir()
	ignored := writeFile(t, root, "a.js", "// xform:ignore Append\nx\n")
	kept := writeFile(t, root, "b.js", "y\n")

	tr := newTestTransformer(t, Options{
		Include: []string{"."},
		Yes:     true,
		Plugins: []plugins.Plugin{appendPlugin(t, "Append", "z\n", plugins.TypeAll)},
		Cwd:     m.Path(root),
	}, Deps{})

	_, err := tr.Run(context.Background())
	require.NoError(t, err)

	if got := readFile(t, ignored); got != "// xform:ignore Append\nx\n" {
		t.Fatalf("ignored file changed: %q", got)
	}
	if got := readFile(t, kept); got != "y\nz\n" {
		t.Fatalf("kept file = %q", got)
	}
}
