package plugins

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	m "github.com/mouse-blink/xform/internal/model"
)

// HeaderID is the id of the Header plugin.
const HeaderID = "Header"

var headerBlock = regexp.MustCompile(`^/\*\*\r?\n(?:.*\n)*? \*/`)

// Copyright describes the @copyright line.
type Copyright struct {
	Name  string
	Start int
	// End defaults to the current year.
	End int
}

// HeaderConfig configures Header.
type HeaderConfig struct {
	Author    string
	Copyright *Copyright
	Types     TypeSet
	Now       func() time.Time
}

type headerRule struct {
	pattern *regexp.Regexp
	line    string
}

// Header maintains the leading /** ... */ block of a file, one tagged line
// per configured field.
type Header struct {
	Base

	cfg   HeaderConfig
	rules []headerRule
}

// NewHeader validates cfg. The lines are rendered in Build so the year is
// taken when the run starts.
func NewHeader(cfg HeaderConfig) (*Header, error) {
	if cfg.Author == "" && cfg.Copyright == nil {
		return nil, errors.New("header: author or copyright required")
	}

	if cfg.Copyright != nil && cfg.Copyright.Name == "" {
		return nil, errors.New("header: copyright name required")
	}

	if cfg.Types == 0 {
		cfg.Types = TypeAll
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	p := &Header{cfg: cfg}

	base, err := NewBase(HeaderID, cfg.Types, WithInit(p.init))
	if err != nil {
		return nil, err
	}

	p.Base = base

	return p, nil
}

func (p *Header) init(_ context.Context, _ BuildEnv) error {
	p.rules = p.rules[:0]

	if p.cfg.Author != "" {
		p.rules = append(p.rules, tagRule("author", p.cfg.Author))
	}

	if c := p.cfg.Copyright; c != nil {
		end := c.End
		if end == 0 {
			end = p.cfg.Now().Year()
		}

		start := c.Start
		if start == 0 {
			start = end
		}

		p.rules = append(p.rules, tagRule("copyright",
			fmt.Sprintf("© %d - %d %s. All rights reserved.", start, end, c.Name)))
	}

	return nil
}

func tagRule(tag, value string) headerRule {
	return headerRule{
		pattern: regexp.MustCompile(`(?m)^ \* @` + tag + ` [^\r\n]*`),
		line:    " * @" + tag + " " + value,
	}
}

// Callback rewrites the configured lines of an existing header, or prepends
// a new header.
func (p *Header) Callback(_ context.Context, src *m.Source) error {
	if len(p.rules) == 0 {
		return errors.New("header: plugin not built")
	}

	loc := headerBlock.FindStringIndex(src.Data)
	if loc == nil {
		eol := lineEnding(src.Data)
		lines := make([]string, 0, len(p.rules))
		for _, r := range p.rules {
			lines = append(lines, r.line)
		}

		src.Replace("/**" + eol + strings.Join(lines, eol) + eol + " */" + eol + src.Data)

		return nil
	}

	header := src.Data[:loc[1]]
	eol := lineEnding(header)

	for _, r := range p.rules {
		if at := r.pattern.FindStringIndex(header); at != nil {
			header = header[:at[0]] + r.line + header[at[1]:]
			continue
		}

		closing := strings.LastIndex(header, " */")
		header = header[:closing] + r.line + eol + header[closing:]
	}

	src.Replace(header + src.Data[loc[1]:])

	return nil
}

// lineEnding returns the line break of the first line of data.
func lineEnding(data string) string {
	if i := strings.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		return "\r\n"
	}

	return "\n"
}
