package iterator

import "strings"

// Iterator advances a State one character at a time.
type Iterator struct {
	State State
	opts  *Options
	n     int
}

// New creates an Iterator over data with the default state.
func New(data string, opts *Options) *Iterator {
	return FromState(NewState(NewSource(data)), opts)
}

// FromState creates an Iterator that resumes from state. Zero Line and Col
// become 1 and a nil AbsSource becomes Source. AtSOF is set when only
// spaces or tabs precede Offset on its line.
func FromState(state State, opts *Options) *Iterator {
	if state.Source == nil {
		state.Source = NewSource("")
	}

	if state.AbsSource == nil {
		state.AbsSource = state.Source
	}

	if state.Line == 0 {
		state.Line = 1
	}

	if state.Col == 0 {
		state.Col = 1
	}

	state.AtSOF = state.AtSOF || atLineStart(state.Source.Data, state.Offset)

	return &Iterator{State: state, opts: opts, n: len(state.Source.Data)}
}

func atLineStart(data string, offset int) bool {
	for i := min(offset, len(data)) - 1; i >= 0; i-- {
		switch data[i] {
		case ' ', '\t':
		case '\n':
			return true
		default:
			return false
		}
	}

	return true
}

// Nested returns a child iterator over Data[start:end]. Its locations are
// relative to the slice while AbsOffset and AbsLocation resolve against the
// outermost buffer.
func (it *Iterator) Nested(start, end int) *Iterator {
	state := NewState(NewSource(it.Slice(start, end)))
	state.AbsSource = it.State.AbsSource
	state.NestedOffset = it.State.NestedOffset + clamp(start, 0, it.n)

	return FromState(state, it.opts)
}

// Options returns the literal-tracking options, nil when disabled.
func (it *Iterator) Options() *Options {
	return it.opts
}

// Walk drives the iterator until EOF. fn is called once per position; the
// iterator is only advanced when fn did not move the offset itself.
// Returning false from fn stops the walk.
func (it *Iterator) Walk(fn func(it *Iterator) bool) {
	for !it.IsEOF() {
		before := it.State.Offset
		if !fn(it) {
			return
		}

		if it.State.Offset == before {
			it.Advance()
		}
	}
}

// Advance consumes exactly one character and updates the lexical context.
func (it *Iterator) Advance() {
	s := &it.State
	if s.Offset >= it.n {
		return
	}

	data := s.Source.Data
	c := data[s.Offset]

	var prev byte
	if s.Offset > 0 {
		prev = data[s.Offset-1]
	}

	if c == '\n' && prev != '\\' {
		s.Offset++
		s.Line++
		s.Col = 1
		s.AtSOF = true

		switch {
		case s.Comment.Kind == CommentLine:
			s.Comment = Comment{}
		case s.Comment.Kind == CommentBlock:
			s.Comment.Pos = 0
		case s.Regex.Active():
			s.Regex.Pos = 0
		}

		return
	}

	if s.AtSOF && c != ' ' && c != '\t' {
		s.AtSOF = false
	}

	if s.IsCode() {
		s.Depth.track(c)
	}

	if it.opts != nil {
		it.updateContext(c, prev)
	}

	s.Offset++
	s.Col++
}

// updateContext runs the literal context transitions for the character at
// the current offset. Closing checks always run before opening checks.
func (it *Iterator) updateContext(c, prev byte) {
	s := &it.State

	switch {
	case s.Str != "":
		if c == s.Str[0] && prev != '\\' {
			s.Str = ""
		}
	case s.Comment.Kind == CommentBlock:
		if matchClose(&s.Comment.Pos, &s.Comment.Skip, s.Comment.Close, c, prev) {
			s.Comment = Comment{}
		}
	case s.Comment.Kind == CommentLine:
		// closed by the next unescaped newline
	case s.Regex.Active():
		if matchClose(&s.Regex.Pos, &s.Regex.Skip, s.Regex.Close, c, prev) {
			s.Regex = Regex{}
		}
	default:
		it.openContext(c, prev)
	}
}

func (it *Iterator) openContext(c, prev byte) {
	s := &it.State
	o := it.opts

	for _, delim := range o.Strings {
		if len(delim) == 1 && c == delim[0] && prev != '\\' {
			s.Str = delim
			return
		}
	}

	if o.Comment.Line != "" && it.MatchPrefix(o.Comment.Line) {
		s.Comment = Comment{Kind: CommentLine, Open: o.Comment.Line}
		return
	}

	if prev == '\\' {
		return
	}

	for _, pair := range o.Comment.Block {
		if pair[1] != "" && it.matchOpen(pair[0], c) {
			s.Comment = Comment{Kind: CommentBlock, Open: pair[0], Close: pair[1], Skip: len(pair[0]) - 1}
			return
		}
	}

	for _, pair := range o.Regex {
		if pair[1] != "" && it.matchOpen(pair[0], c) {
			s.Regex = Regex{Open: pair[0], Close: pair[1], Skip: len(pair[0]) - 1}
			return
		}
	}
}

func (it *Iterator) matchOpen(open string, c byte) bool {
	switch len(open) {
	case 0:
		return false
	case 1:
		return c == open[0]
	default:
		return it.MatchPrefix(open)
	}
}

// matchClose is the rolling close-matcher shared by block comments and
// regex literals. It reports whether c completes the close delimiter.
func matchClose(pos, skip *int, closer string, c, prev byte) bool {
	if *skip > 0 {
		*skip--
		return false
	}

	if c == closer[*pos] && prev != '\\' {
		*pos++
		return *pos == len(closer)
	}

	if c == closer[0] && len(closer) > 1 {
		*pos = 1
	} else {
		*pos = 0
	}

	return false
}

// Len returns the length of the buffer.
func (it *Iterator) Len() int {
	return it.n
}

// Peek returns the character at offset+adjust, or 0 when out of range.
func (it *Iterator) Peek(adjust int) byte {
	i := it.State.Offset + adjust
	if i < 0 || i >= it.n {
		return 0
	}

	return it.State.Source.Data[i]
}

// PeekNext returns the character after the current one.
func (it *Iterator) PeekNext() byte {
	return it.Peek(1)
}

// PeekPrev returns the character before the current one.
func (it *Iterator) PeekPrev() byte {
	return it.Peek(-1)
}

// IsInlineWhitespace reports whether the current character is a space or tab.
func (it *Iterator) IsInlineWhitespace() bool {
	c := it.Peek(0)
	return c == ' ' || c == '\t'
}

// IsEOL reports whether the current character is a line break.
func (it *Iterator) IsEOL() bool {
	c := it.Peek(0)
	return c == '\n' || c == '\r'
}

// IsEOF reports whether the whole buffer has been consumed.
func (it *Iterator) IsEOF() bool {
	return it.State.Offset >= it.n
}

// IsExcluded reports whether the current character is escaped.
func (it *Iterator) IsExcluded() bool {
	return it.PeekPrev() == '\\'
}

// IsVariableChar reports whether the current character may appear in an
// identifier (ASCII letters, digits and underscore).
func (it *Iterator) IsVariableChar() bool {
	return isVariableChar(it.Peek(0))
}

func isVariableChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	default:
		return false
	}
}

// MatchPrefix reports whether s starts at the current offset.
func (it *Iterator) MatchPrefix(s string) bool {
	if it.State.Offset >= it.n {
		return s == ""
	}

	return strings.HasPrefix(it.State.Source.Data[it.State.Offset:], s)
}

// Unterminated reports whether the buffer ended inside a literal.
func (it *Iterator) Unterminated() bool {
	return it.IsEOF() && !it.State.IsCode()
}

// Slice returns Data[start:end], clamped to the buffer. It ignores the cursor.
func (it *Iterator) Slice(start, end int) string {
	start = clamp(start, 0, it.n)
	end = clamp(end, start, it.n)

	return it.State.Source.Data[start:end]
}

// CaptureLocation returns the current line, column and absolute offset.
func (it *Iterator) CaptureLocation() Location {
	return Location{
		Line:   it.State.Line,
		Column: it.State.Col,
		Offset: it.State.AbsOffset(),
	}
}

// AbsLocation resolves the current position against AbsSource, which gives
// the real line and column of a nested iterator.
func (it *Iterator) AbsLocation() Location {
	abs := it.State.AbsSource
	if abs == nil || abs == it.State.Source {
		return it.CaptureLocation()
	}

	offset := clamp(it.State.AbsOffset(), 0, len(abs.Data))
	loc := Location{Line: 1, Column: 1, Offset: offset}

	for i := range offset {
		if abs.Data[i] == '\n' && (i == 0 || abs.Data[i-1] != '\\') {
			loc.Line++
			loc.Column = 1

			continue
		}

		loc.Column++
	}

	return loc
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
