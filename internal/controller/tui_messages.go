package controller

// Message types.
type sourcesMsg struct {
	items []sourceItem
	src   int
	dist  int
}

type confirmAnswerMsg struct {
	accepted bool
}

// List item types.
type sourceItem struct {
	path   string
	kind   string
	origin string
}

func (s sourceItem) FilterValue() string {
	return s.path
}
