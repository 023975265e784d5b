package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	m "github.com/mouse-blink/xform/internal/model"
)

// UpsertRuntimeVarsID is the default id of UpsertRuntimeVars.
const UpsertRuntimeVarsID = "UpsertRuntimeVars"

var identPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// Expr is a value rendered verbatim as code.
type Expr string

// Var is one runtime constant. Path values are quoted, Expr values are
// inserted as is and everything else is JSON encoded.
type Var struct {
	Name  string
	Value any
}

// UpsertConfig configures UpsertRuntimeVars.
type UpsertConfig struct {
	// ID is used as plugin id and block marker.
	ID     string
	Types  TypeSet
	Vars   []Var
	Before string
	After  string
}

// UpsertRuntimeVars keeps a marker-delimited block of constants at the top
// of a file:
//
//	/** <id> */ <before>;const NAME=VALUE;...<after>; /** <id> END */
type UpsertRuntimeVars struct {
	Base

	block   string
	pattern *regexp.Regexp
}

// NewUpsertRuntimeVars renders the block once and compiles its detector.
func NewUpsertRuntimeVars(cfg UpsertConfig) (*UpsertRuntimeVars, error) {
	if cfg.ID == "" {
		cfg.ID = UpsertRuntimeVarsID
	}

	if cfg.Types == 0 {
		cfg.Types = TypeAll
	}

	base, err := NewBase(cfg.ID, cfg.Types)
	if err != nil {
		return nil, err
	}

	block, err := renderBlock(cfg)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", cfg.ID, err)
	}

	marker := regexp.QuoteMeta(cfg.ID)

	return &UpsertRuntimeVars{
		Base:    base,
		block:   block,
		pattern: regexp.MustCompile(`/\*\* ` + marker + ` \*/.*?/\*\* ` + marker + ` END \*/[\r\n]*`),
	}, nil
}

// Block returns the rendered marker block.
func (p *UpsertRuntimeVars) Block() string {
	return p.block
}

// Callback inserts, replaces or keeps the block.
func (p *UpsertRuntimeVars) Callback(_ context.Context, src *m.Source) error {
	loc := p.pattern.FindStringIndex(src.Data)
	if loc == nil {
		src.Replace(p.block + src.Data)
		return nil
	}

	current := src.Data[loc[0]:loc[1]]
	if strings.TrimRight(current, "\r\n") == strings.TrimRight(p.block, "\n") {
		return nil
	}

	src.Replace(src.Data[:loc[0]] + p.block + src.Data[loc[1]:])

	return nil
}

func renderBlock(cfg UpsertConfig) (string, error) {
	var b strings.Builder

	b.WriteString("/** " + cfg.ID + " */ ")

	if cfg.Before != "" {
		b.WriteString(withSemicolon(cfg.Before))
	}

	for _, v := range cfg.Vars {
		if !identPattern.MatchString(v.Name) {
			return "", fmt.Errorf("invalid variable name %q", v.Name)
		}

		value, err := renderValue(v.Value)
		if err != nil {
			return "", fmt.Errorf("variable %s: %w", v.Name, err)
		}

		b.WriteString("const " + v.Name + "=" + value + ";")
	}

	if cfg.After != "" {
		b.WriteString(withSemicolon(cfg.After))
	}

	b.WriteString(" /** " + cfg.ID + " END */\n")

	return b.String(), nil
}

func renderValue(value any) (string, error) {
	switch v := value.(type) {
	case m.Path:
		return strconv.Quote(filepath.ToSlash(string(v))), nil
	case Expr:
		return string(v), nil
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}

		return string(out), nil
	}
}

func withSemicolon(code string) string {
	code = strings.TrimSpace(code)
	if strings.HasSuffix(code, ";") {
		return code
	}

	return code + ";"
}

// sortedVars turns a name->value map into a deterministic Var list.
func sortedVars(values map[string]any, paths map[string]string) []Var {
	vars := make([]Var, 0, len(values)+len(paths))

	for name, value := range values {
		vars = append(vars, Var{Name: name, Value: value})
	}

	for name, path := range paths {
		vars = append(vars, Var{Name: name, Value: m.Path(path)})
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	return vars
}
