package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/xform/internal/model"
)

const kindWidth = 4

// header, counts, blank line and footer
const sourcesChromeHeight = 4

var (
	srcKindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Width(kindWidth)
	distKindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(kindWidth)
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	originStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sourcesTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	sourcesCounts  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sourcesFooter  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sourcesMarkers = [2]string{"  ", "› "}
)

// sourceDelegate renders one source per line: marker, kind, path and, for
// dist files, the originating source.
type sourceDelegate struct{}

func (sourceDelegate) Height() int { return 1 }
func (sourceDelegate) Spacing() int { return 0 }
func (sourceDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (sourceDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	src, ok := item.(sourceItem)
	if !ok {
		return
	}

	marker := sourcesMarkers[0]
	path := pathStyle

	if index == l.Index() {
		marker = sourcesMarkers[1]
		path = selectedStyle
	}

	kind := srcKindStyle
	if src.kind == string(m.SourceDist) {
		kind = distKindStyle
	}

	room := l.Width() - lipgloss.Width(marker) - kindWidth - 1
	line := marker + kind.Render(src.kind) + " " + path.Render(shortenPath(src.path, room))

	if src.origin != "-" {
		if rest := room - lipgloss.Width(src.path) - 3; rest > 0 {
			line += originStyle.Render(" ← " + shortenPath(src.origin, rest))
		}
	}

	_, _ = fmt.Fprint(w, line)
}

// shortenPath keeps the end of path, the part naming the file, within width.
func shortenPath(path string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(path) <= width {
		return path
	}

	runes := []rune(path)
	keep := width - 1

	for keep > 0 && lipgloss.Width(string(runes[len(runes)-keep:])) > width-1 {
		keep--
	}

	return "…" + string(runes[len(runes)-keep:])
}

func newSourcesMsg(sources []*m.Source) sourcesMsg {
	msg := sourcesMsg{items: make([]sourceItem, 0, len(sources))}

	for _, src := range sources {
		msg.items = append(msg.items, sourceItem{
			path:   string(src.Path),
			kind:   string(src.Type),
			origin: sourceOrigin(src),
		})

		switch src.Type {
		case m.SourceSrc:
			msg.src++
		case m.SourceDist:
			msg.dist++
		}
	}

	return msg
}

// sourcesModel is a filterable list of discovered sources.
type sourcesModel struct {
	files    list.Model
	src      int
	dist     int
	rendered bool
}

func newSourcesModel() sourcesModel {
	files := list.New(nil, sourceDelegate{}, 80, 20)
	files.SetShowTitle(false)
	files.SetShowStatusBar(false)
	files.SetShowHelp(false)
	files.SetShowPagination(false)
	files.FilterInput.Placeholder = "Filter by path…"

	return sourcesModel{files: files}
}

func (m sourcesModel) Init() tea.Cmd {
	return nil
}

func (m sourcesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.files.SetSize(msg.Width, max(msg.Height-sourcesChromeHeight, 1))

		return m, nil

	case tea.KeyMsg:
		if m.files.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "esc", "ctrl+c":
				return m, tea.Quit
			}
		}

	case sourcesMsg:
		items := make([]list.Item, 0, len(msg.items))
		for _, item := range msg.items {
			items = append(items, item)
		}

		m.src, m.dist = msg.src, msg.dist
		m.rendered = true
		cmd := m.files.SetItems(items)

		return m, cmd
	}

	var cmd tea.Cmd

	m.files, cmd = m.files.Update(msg)

	return m, cmd
}

func (m sourcesModel) View() string {
	if !m.rendered {
		return "Discovering sources…\n"
	}

	counts := fmt.Sprintf("%d files  (%d src, %d dist)", m.src+m.dist, m.src, m.dist)

	return sourcesTitle.Render("xform sources") + "  " + sourcesCounts.Render(counts) + "\n\n" +
		m.files.View() + "\n" +
		sourcesFooter.Render("↑/↓ move • / filter • q quit")
}
