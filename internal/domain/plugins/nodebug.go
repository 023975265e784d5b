package plugins

import (
	"context"
	"regexp"
	"strings"

	"github.com/mouse-blink/xform/internal/iterator"
	m "github.com/mouse-blink/xform/internal/model"
)

// NoDebugID is the id of the NoDebug plugin.
const NoDebugID = "NoDebug"

// DefaultDebugCallee is the call NoDebug comments out by default.
const DefaultDebugCallee = "debug"

// NoDebugConfig configures NoDebug.
type NoDebugConfig struct {
	// Callee is the function name whose statements are commented out.
	Callee string
	Types  TypeSet
}

// NoDebug comments out every statement that starts with a call to the
// configured callee, including multi-line calls.
type NoDebug struct {
	Base

	callee  string
	pattern *regexp.Regexp
	opts    *iterator.Options
}

type span struct {
	start, end int
}

// NewNoDebug creates a NoDebug plugin. It runs on dist files by default.
func NewNoDebug(cfg NoDebugConfig) (*NoDebug, error) {
	if cfg.Callee == "" {
		cfg.Callee = DefaultDebugCallee
	}

	if cfg.Types == 0 {
		cfg.Types = TypeDist
	}

	base, err := NewBase(NoDebugID, cfg.Types)
	if err != nil {
		return nil, err
	}

	return &NoDebug{
		Base:    base,
		callee:  cfg.Callee,
		pattern: regexp.MustCompile(`(?m)^\s*(` + regexp.QuoteMeta(cfg.Callee) + `)\s*\(`),
		opts:    iterator.JS(),
	}, nil
}

// Callback prefixes every line of each matched call statement with //.
func (p *NoDebug) Callback(_ context.Context, src *m.Source) error {
	data := src.Data

	matches := p.pattern.FindAllStringSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil
	}

	shared := iterator.NewSource(data)
	spans := make([]span, 0, len(matches))
	covered := 0

	for _, match := range matches {
		calleeStart := match[2]
		if calleeStart < covered {
			continue
		}

		paren := match[1] - 1

		end, ok := p.statementEnd(iterator.FromState(iterator.State{
			Source: shared,
			Offset: paren,
			Line:   strings.Count(data[:paren], "\n") + 1,
		}, p.opts))
		if !ok {
			p.Logger().Warn("unterminated call left untouched",
				"plugin", p.ID(),
				"file", src.DisplayPath(),
				"line", strings.Count(data[:calleeStart], "\n")+1,
				"callee", p.callee)

			continue
		}

		spans = append(spans, span{start: strings.LastIndexByte(data[:calleeStart], '\n') + 1, end: end})
		covered = end
	}

	if len(spans) == 0 {
		return nil
	}

	src.Replace(commentSpans(data, spans))

	return nil
}

// statementEnd scans from the opening parenthesis to the matching closing
// one in code context and past an optional semicolon.
func (p *NoDebug) statementEnd(it *iterator.Iterator) (int, bool) {
	for !it.IsEOF() {
		c := it.Peek(0)
		code := it.State.IsCode()

		it.Advance()

		if !code || c != ')' || it.State.Depth.Parenth != 0 {
			continue
		}

		end := it.State.Offset

		it.ConsumeInlineWhitespace()

		if it.ConsumeOptional(";") {
			return it.State.Offset, true
		}

		return end, true
	}

	return 0, false
}

func commentSpans(data string, spans []span) string {
	var b strings.Builder

	b.Grow(len(data) + 4*len(spans))

	last := 0

	for _, sp := range spans {
		b.WriteString(data[last:sp.start])
		b.WriteString("//")
		b.WriteString(strings.ReplaceAll(data[sp.start:sp.end], "\n", "\n//"))

		rest := data[sp.end:]
		if eol := strings.IndexByte(rest, '\n'); eol >= 0 {
			rest = rest[:eol]
		}

		if strings.TrimSpace(rest) != "" {
			b.WriteByte('\n')
		}

		last = sp.end
	}

	b.WriteString(data[last:])

	return b.String()
}
