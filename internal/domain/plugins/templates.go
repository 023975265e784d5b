package plugins

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"

	m "github.com/mouse-blink/xform/internal/model"
)

// FillTemplatesID is the id of the FillTemplates plugin.
const FillTemplatesID = "FillTemplates"

// FillTemplatesConfig configures FillTemplates.
type FillTemplatesConfig struct {
	Templates map[string]string
	// Prefix and Suffix delimit a placeholder, e.g. "{{" and "}}". Without
	// them keys are matched as whole words.
	Prefix string
	Suffix string
	// Quote renders values as JSON strings.
	Quote bool
	Types TypeSet
}

// FillTemplates replaces placeholders with configured values.
type FillTemplates struct {
	Base

	cfg     FillTemplatesConfig
	pattern *regexp.Regexp
}

// NewFillTemplates compiles one alternation over all keys, longest first.
func NewFillTemplates(cfg FillTemplatesConfig) (*FillTemplates, error) {
	if len(cfg.Templates) == 0 {
		return nil, errors.New("fill templates: no templates")
	}

	if cfg.Types == 0 {
		cfg.Types = TypeAll
	}

	base, err := NewBase(FillTemplatesID, cfg.Types)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(cfg.Templates))
	for key := range cfg.Templates {
		if key == "" {
			return nil, errors.New("fill templates: empty key")
		}

		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	alts := make([]string, len(keys))
	for i, key := range keys {
		alts[i] = regexp.QuoteMeta(key)
	}

	expr := `(?:` + strings.Join(alts, "|") + `)`
	if cfg.Prefix == "" && cfg.Suffix == "" {
		expr = `\b` + expr + `\b`
	} else {
		expr = regexp.QuoteMeta(cfg.Prefix) + expr + regexp.QuoteMeta(cfg.Suffix)
	}

	return &FillTemplates{Base: base, cfg: cfg, pattern: regexp.MustCompile(expr)}, nil
}

// Callback replaces every placeholder occurrence.
func (p *FillTemplates) Callback(_ context.Context, src *m.Source) error {
	src.Replace(p.pattern.ReplaceAllStringFunc(src.Data, func(match string) string {
		key := match[len(p.cfg.Prefix) : len(match)-len(p.cfg.Suffix)]

		value, ok := p.cfg.Templates[key]
		if !ok {
			return match
		}

		if !p.cfg.Quote {
			return value
		}

		quoted, err := json.Marshal(value)
		if err != nil {
			return match
		}

		return string(quoted)
	}))

	return nil
}
