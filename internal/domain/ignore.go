package domain

import (
	"strings"

	"github.com/mouse-blink/xform/internal/iterator"
)

const ignoreDirective = "xform:ignore"

// ignoreRule disables plugins for one file. A bare directive disables all
// of them; otherwise only the listed plugin ids.
type ignoreRule struct {
	all bool
	ids map[string]struct{}
}

func (r ignoreRule) ignores(id string) bool {
	if r.all {
		return true
	}

	_, ok := r.ids[strings.ToLower(id)]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.ids = nil

		return
	}

	if dst.all || len(src.ids) == 0 {
		return
	}

	if dst.ids == nil {
		dst.ids = make(map[string]struct{}, len(src.ids))
	}

	for id := range src.ids {
		dst.ids[id] = struct{}{}
	}
}

// parseIgnoreDirective reads "xform:ignore [id, ...]" from the text of one
// line or block comment, delimiters included.
func parseIgnoreDirective(comment string) (ignoreRule, bool) {
	s := strings.TrimSpace(comment)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimPrefix(s, ignoreDirective)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return ignoreRule{}, false
	}

	rule := ignoreRule{ids: make(map[string]struct{})}

	for _, part := range strings.Split(rest, ",") {
		id := strings.ToLower(strings.TrimSpace(part))
		if id == "" {
			continue
		}

		rule.ids[id] = struct{}{}
	}

	if len(rule.ids) == 0 {
		return ignoreRule{all: true}, true
	}

	return rule, true
}

// fileIgnoreRule merges every ignore directive found in the comments of
// data. Directives inside strings are not honored.
func fileIgnoreRule(data string) ignoreRule {
	if !strings.Contains(data, ignoreDirective) {
		return ignoreRule{}
	}

	var rule ignoreRule

	it := iterator.New(data, iterator.JS())
	it.Walk(func(it *iterator.Iterator) bool {
		if !it.State.IsCode() || (!it.MatchPrefix("//") && !it.MatchPrefix("/*")) {
			return true
		}

		start := it.State.Offset
		it.Advance()

		for !it.IsEOF() && it.State.Comment.Kind != iterator.CommentNone {
			it.Advance()
		}

		if r, ok := parseIgnoreDirective(it.Slice(start, it.State.Offset)); ok {
			mergeIgnoreRule(&rule, r)
		}

		return true
	})

	return rule
}
