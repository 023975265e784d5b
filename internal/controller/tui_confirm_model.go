package controller

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "apply"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "enter", "esc", "q", "ctrl+c"),
		key.WithHelp("n/enter", "abort"),
	),
}

// confirmModel asks a single yes/no question. Anything but "y" rejects.
type confirmModel struct {
	question string
	answered bool
	accepted bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, confirmKeys.Yes):
			return m.answer(true)
		case key.Matches(msg, confirmKeys.No):
			return m.answer(false)
		}
	case confirmAnswerMsg:
		return m.answer(msg.accepted)
	}

	return m, nil
}

func (m confirmModel) answer(accepted bool) (tea.Model, tea.Cmd) {
	m.answered = true
	m.accepted = accepted

	return m, tea.Quit
}

func (m confirmModel) View() string {
	questionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	if m.answered {
		answer := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("no")
		if m.accepted {
			answer = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("yes")
		}

		return questionStyle.Render(m.question) + " " + answer + "\n"
	}

	help := confirmKeys.Yes.Help().Key + " " + confirmKeys.Yes.Help().Desc + " • " +
		confirmKeys.No.Help().Key + " " + confirmKeys.No.Help().Desc

	return questionStyle.Render(m.question) + " " + helpStyle.Render("["+help+"]") + "\n"
}
