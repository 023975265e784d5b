package iterator

// Options configures which literal contexts an Iterator tracks. A nil
// *Options disables literal tracking altogether; only depth is tracked then.
type Options struct {
	// Strings lists single-character string delimiters.
	Strings []string
	Comment CommentOptions
	// Regex lists open/close delimiter pairs of regex-like literals.
	Regex [][2]string
}

// CommentOptions configures line and block comments.
type CommentOptions struct {
	Line  string
	Block [][2]string
}

// JS returns the options for JavaScript and TypeScript sources.
func JS() *Options {
	return &Options{
		Strings: []string{"'", "\"", "`"},
		Comment: CommentOptions{
			Line:  "//",
			Block: [][2]string{{"/*", "*/"}},
		},
	}
}

// JSON returns the options for JSON with comments.
func JSON() *Options {
	return &Options{
		Strings: []string{"\""},
		Comment: CommentOptions{
			Line:  "//",
			Block: [][2]string{{"/*", "*/"}},
		},
	}
}
