// Package iterator provides a character-level cursor over source text that
// classifies every position as code, string, comment or regex literal and
// tracks bracket nesting depth while doing so.
//
// The iterator is a mechanical state tracker, not a validating lexer:
// malformed input never produces an error, unterminated literals simply stay
// open until the end of the buffer.
package iterator

// Source is a shared, immutable text buffer. Every State created over the
// same buffer holds the same *Source, so copying a State never copies text.
type Source struct {
	Data string
}

// NewSource wraps data in a Source.
func NewSource(data string) *Source {
	return &Source{Data: data}
}

// CommentKind identifies the active comment context.
type CommentKind uint8

// Comment kinds.
const (
	CommentNone CommentKind = iota
	CommentLine
	CommentBlock
)

// Comment is the active comment context of a State.
type Comment struct {
	Kind  CommentKind
	Open  string
	Close string
	// Pos is the number of characters of Close matched so far.
	Pos int
	// Skip is the number of opener characters not consumed yet.
	Skip int
}

// Regex is the active regex-literal context of a State.
type Regex struct {
	Open  string
	Close string
	Pos   int
	Skip  int
}

// Active reports whether the iterator is inside a regex literal.
func (r Regex) Active() bool {
	return r.Close != ""
}

// Depth holds the four independent nesting counters.
type Depth struct {
	Parenth  int
	Bracket  int
	Brace    int
	Template int
}

// IsZero reports whether every counter is zero.
func (d Depth) IsZero() bool {
	return d == Depth{}
}

func (d *Depth) track(c byte) {
	switch c {
	case '(':
		d.Parenth++
	case ')':
		d.Parenth--
	case '[':
		d.Bracket++
	case ']':
		d.Bracket--
	case '{':
		d.Brace++
	case '}':
		d.Brace--
	case '<':
		d.Template++
	case '>':
		d.Template--
	}
}

// State is the cursor of an Iterator. It owns its scalar fields by value and
// references its buffers by pointer, so assigning a State yields an
// independent cursor over the same text.
type State struct {
	// Source is the buffer characters are read from.
	Source *Source
	// AbsSource is the outermost buffer, used to resolve absolute positions
	// of nested iterators.
	AbsSource *Source
	// Offset is the zero-based index into Source.Data.
	Offset int
	// NestedOffset is the position of Source inside AbsSource.
	NestedOffset int
	Line         int
	Col          int
	// AtSOF is true at the start of a line until the first character that
	// is not a space or tab.
	AtSOF bool
	// Str is the active string delimiter, empty outside strings.
	Str     string
	Comment Comment
	Regex   Regex
	Depth   Depth
}

// NewState returns the default state over src.
func NewState(src *Source) State {
	return State{
		Source:    src,
		AbsSource: src,
		Line:      1,
		Col:       1,
		AtSOF:     true,
	}
}

// IsCode reports whether the cursor is outside every literal context.
func (s State) IsCode() bool {
	return s.Str == "" && s.Comment.Kind == CommentNone && !s.Regex.Active()
}

// AbsOffset returns the offset inside AbsSource.
func (s State) AbsOffset() int {
	return s.NestedOffset + s.Offset
}

// Copy returns an independent cursor sharing the same buffers.
func (s State) Copy() State {
	return s
}

// Location is an externally visible position.
type Location struct {
	Line   int
	Column int
	Offset int
}
