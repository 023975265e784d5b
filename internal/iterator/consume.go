package iterator

import "strings"

// CodeStep is passed to ConsumeCodeWhile predicates.
type CodeStep struct {
	// Index is the offset of Peek in the buffer.
	Index    int
	Peek     byte
	Prev     byte
	InString bool
	Excluded bool
}

// ConsumeOptional advances past s when it starts at the current offset.
func (it *Iterator) ConsumeOptional(s string) bool {
	if s == "" || !it.MatchPrefix(s) {
		return false
	}

	for range len(s) {
		it.Advance()
	}

	return true
}

// ConsumeInlineWhitespace consumes spaces and tabs.
func (it *Iterator) ConsumeInlineWhitespace() string {
	return it.ConsumeWhile(func(c byte, _ int) bool {
		return c == ' ' || c == '\t'
	})
}

// ConsumeWhitespace consumes spaces, tabs and line breaks.
func (it *Iterator) ConsumeWhitespace() string {
	return it.ConsumeWhile(func(c byte, _ int) bool {
		return isWhitespace(c)
	})
}

// ConsumeWhile advances while pred holds for the current character and its
// index in the buffer, and returns the consumed text.
func (it *Iterator) ConsumeWhile(pred func(c byte, index int) bool) string {
	start := it.State.Offset

	for !it.IsEOF() && pred(it.Peek(0), it.State.Offset) {
		it.Advance()
	}

	return it.Slice(start, it.State.Offset)
}

// ConsumeUntil advances until pred holds.
func (it *Iterator) ConsumeUntil(pred func(c byte, index int) bool) string {
	return it.ConsumeWhile(func(c byte, index int) bool {
		return !pred(c, index)
	})
}

// ConsumeCodeWhile is ConsumeWhile with its own quote tracking for ', " and
// backtick strings, independent of the iterator's options. The opening and
// closing quotes are reported as InString.
func (it *Iterator) ConsumeCodeWhile(pred func(step CodeStep) bool) string {
	start := it.State.Offset

	var quote byte

	for !it.IsEOF() {
		step := CodeStep{
			Index: it.State.Offset,
			Peek:  it.Peek(0),
			Prev:  it.PeekPrev(),
		}
		step.Excluded = step.Prev == '\\'

		closing := false

		switch {
		case quote == 0 && isQuote(step.Peek) && !step.Excluded:
			quote = step.Peek
		case quote != 0 && step.Peek == quote && !step.Excluded:
			closing = true
		}

		step.InString = quote != 0

		if !pred(step) {
			break
		}

		if closing {
			quote = 0
		}

		it.Advance()
	}

	return it.Slice(start, it.State.Offset)
}

// ConsumeCodeUntil advances until pred holds, with quote tracking.
func (it *Iterator) ConsumeCodeUntil(pred func(step CodeStep) bool) string {
	return it.ConsumeCodeWhile(func(step CodeStep) bool {
		return !pred(step)
	})
}

// ConsumeUntilEOL consumes the rest of the line, not the newline itself.
func (it *Iterator) ConsumeUntilEOL() string {
	return it.ConsumeUntil(func(c byte, _ int) bool {
		return c == '\n'
	})
}

// SkipEOL advances past one line break character if present.
func (it *Iterator) SkipEOL() bool {
	if !it.IsEOL() {
		return false
	}

	it.Advance()

	return true
}

// Line returns the current line up to, not including, the next newline.
// With full the line starts at its first character, otherwise at the
// current offset.
func (it *Iterator) Line(full bool) string {
	data := it.State.Source.Data
	offset := it.State.Offset

	start := offset
	if full {
		start = clamp(offset-(it.State.Col-1), 0, offset)
	}

	if offset >= it.n {
		return it.Slice(start, it.n)
	}

	end := strings.IndexByte(data[offset:], '\n')
	if end < 0 {
		return data[start:]
	}

	return data[start : offset+end]
}

// DecrementOnTrim walks index backwards while it points at whitespace,
// never below minIndex. With plusOne the result is incremented when at least
// one character was trimmed, turning it back into an exclusive bound.
func (it *Iterator) DecrementOnTrim(minIndex, index int, plusOne bool) int {
	data := it.State.Source.Data
	decremented := false

	for index > minIndex && index < it.n && isWhitespace(data[index]) {
		index--
		decremented = true
	}

	if decremented && plusOne {
		index++
	}

	return index
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}
